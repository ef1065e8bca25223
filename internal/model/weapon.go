package model

// Weapon 武器商品模型,对应 items 表
type Weapon struct {
	ID          int32  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Value       int64  `db:"value"` // 售价
	Damage      int32  `db:"damage"`
}
