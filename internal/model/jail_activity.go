package model

// JailActivity 监狱活动模型,对应 jail_activities 表
type JailActivity struct {
	ID              int32  `db:"id"`
	Name            string `db:"name"`
	Description     string `db:"description"`
	ChanceIncrease  int32  `db:"chance_increase"`  // 越狱概率增量
	CooldownSeconds int32  `db:"cooldown_seconds"` // 冷却时间,所有活动共用同一锚点
}
