package model

import "time"

// 注文ステータス更新、キャンセル、パートナー割り当てなど。
type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//注文をキャンセルした操作。
	AuditActionCancelOrder AuditAction = "CANCEL_ORDER"
	//配達パートナーを割り当てた操作。
	AuditActionAssignPartner AuditAction = "ASSIGN_PARTNER"
	//パートナー書類を確認済みにした操作。
	AuditActionVerifyPartner AuditAction = "VERIFY_PARTNER"
	//パートナーの有効/停止を切り替えた操作。
	AuditActionSetPartnerActive AuditAction = "SET_PARTNER_ACTIVE"
	//顧客のブラックリストを切り替えた操作。
	AuditActionSetUserBlacklist AuditAction = "SET_USER_BLACKLIST"
)

// 何に対する操作か
type AuditResourceType string

const (
	//注文に対する操作。
	AuditResourceOrder AuditResourceType = "order"

	//配達パートナーに対する操作。
	AuditResourcePartner AuditResourceType = "partner"

	//顧客に対する操作。
	AuditResourceUser AuditResourceType = "user"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のID。
	ActorAdminID int64 `gorm:"not null;index" json:"actor_admin_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
