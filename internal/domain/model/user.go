package model

import "time"

// 顧客。作成は注文システム側で行われ、こちらではブラックリスト切替だけ。
type User struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Phone string `gorm:"type:varchar(20);not null;uniqueIndex" json:"phone"`
	Email string `gorm:"type:varchar(255)" json:"email,omitempty"`

	IsBlacklisted   bool   `gorm:"not null;default:false;index" json:"isBlacklisted"`
	BlacklistReason string `gorm:"type:text" json:"blacklistReason,omitempty"`

	// 集計値
	TotalOrders int64 `gorm:"not null;default:0" json:"totalOrders"`
	TotalSpent  int64 `gorm:"not null;default:0" json:"totalSpent"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
