package model

// CrimeStats 犯罪统计模型,对应 crime_stats 表
type CrimeStats struct {
	UserID      string `db:"user_id"` // uuid
	Total       int64  `db:"total"`
	Successful  int64  `db:"successful"`
	Failed      int64  `db:"failed"`
	TotalProfit int64  `db:"total_profit"`
}

// AverageProfit 每次成功犯罪的平均收益
func (s *CrimeStats) AverageProfit() float64 {
	if s.Successful == 0 {
		return 0
	}
	return float64(s.TotalProfit) / float64(s.Successful)
}
