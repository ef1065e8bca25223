package model

// Rank 军衔表模型,对应 ranks 表
// RequiredExperience 全表唯一,构成全序
type Rank struct {
	ID                 int32   `db:"id"`
	Name               string  `db:"name"`
	RequiredExperience int64   `db:"required_experience"`
	RankBonus          float64 `db:"rank_bonus"` // 犯罪成功率加成,0.05 表示 +5%
}
