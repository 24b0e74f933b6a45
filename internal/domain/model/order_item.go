package model

import "time"

// 注文明細（商品スナップショット）。商品マスタは外部なのでID参照のみ。
type OrderItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64     `gorm:"not null;index" json:"orderId"`
	ProductID     int64     `gorm:"not null;index" json:"productId"`
	NameSnapshot  string    `gorm:"type:varchar(255);not null" json:"name"`
	PriceSnapshot int64     `gorm:"not null" json:"price"`
	Discount      int64     `gorm:"not null" json:"discount"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	ImageURL      string    `gorm:"type:varchar(500)" json:"image"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
