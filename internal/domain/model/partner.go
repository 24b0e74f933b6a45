package model

import "time"

// 配達パートナー（クーリエ）。
// isOnline は勤務フラグ、isActive は有効化フラグ。
// isActive は documents_verified が true のときだけ意味を持つ。
type DeliveryPartner struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	// 電話番号はポータルのログインIDを兼ねる
	Phone        string `gorm:"type:varchar(20);not null;uniqueIndex" json:"phone"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	VehicleType   string `gorm:"type:varchar(30)" json:"vehicleType"`
	VehicleNumber string `gorm:"type:varchar(30)" json:"vehicleNumber"`

	IsOnline          bool `gorm:"not null;default:false;index" json:"isOnline"`
	IsActive          bool `gorm:"not null;default:false;index" json:"isActive"`
	DocumentsVerified bool `gorm:"not null;default:false" json:"documentsVerified"`

	// 集計値。配達完了時に更新する
	TotalDeliveries     int64   `gorm:"not null;default:0" json:"totalDeliveries"`
	CompletedDeliveries int64   `gorm:"not null;default:0" json:"completedDeliveries"`
	Earnings            int64   `gorm:"not null;default:0" json:"earnings"`
	Rating              float64 `gorm:"not null;default:0" json:"rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 割り当て可能かどうか（サーバー側フィルタの条件と同じ）
func (p DeliveryPartner) IsEligible() bool {
	return p.IsOnline && p.IsActive && p.DocumentsVerified
}
