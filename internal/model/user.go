package model

import "time"

// User 账号模型,对应 users 表
type User struct {
	ID           string    `db:"id"` // uuid
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
