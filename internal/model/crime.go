package model

// RiskLevel 犯罪风险等级,由难度推导
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Crime 犯罪项目模型,对应 crimes 表
type Crime struct {
	ID               int32   `db:"id"`
	Name             string  `db:"name"`
	Description      string  `db:"description"`
	MinReward        int64   `db:"min_reward"`
	MaxReward        int64   `db:"max_reward"`
	ExperienceReward int64   `db:"experience_reward"`
	SuccessRate      float64 `db:"success_rate"` // 基础成功率,百分数
	Difficulty       int32   `db:"difficulty"`   // ≥1
	JailRisk         float64 `db:"jail_risk"`    // 失败后入狱概率,[0,1]
}

// Risk 根据难度推导风险等级
func (c *Crime) Risk() RiskLevel {
	switch {
	case c.Difficulty <= 3:
		return RiskLow
	case c.Difficulty <= 6:
		return RiskMedium
	default:
		return RiskHigh
	}
}
