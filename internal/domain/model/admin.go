package model

import "time"

// 管理コンソールの操作者。
type AdminUser struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	// 強制ログアウト用。JWTのtvと一致しないと401
	TokenVersion int  `gorm:"not null;default:0" json:"token_version"`
	IsActive     bool `gorm:"not null;default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
