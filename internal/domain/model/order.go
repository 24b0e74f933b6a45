package model

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// COD回収確認で記録する支払い種別（cash / upi のみ）
type VerifiedPaymentType string

const (
	VerifiedPaymentCash VerifiedPaymentType = "cash"
	VerifiedPaymentUPI  VerifiedPaymentType = "upi"
)

type Order struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID string `gorm:"type:varchar(30);not null;uniqueIndex" json:"orderId"`

	UserID    int64  `gorm:"not null;index" json:"userId"`
	PartnerID *int64 `gorm:"index" json:"partnerId,omitempty"`

	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	StatusNote string      `gorm:"type:text" json:"statusNote,omitempty"`

	// 金額は注文システム側で計算済み（total = subtotal - discount + deliveryFee）
	Subtotal    int64 `gorm:"not null" json:"subtotal"`
	Discount    int64 `gorm:"not null" json:"discount"`
	DeliveryFee int64 `gorm:"not null" json:"deliveryFee"`
	Total       int64 `gorm:"not null" json:"total"`

	PaymentMethod       PaymentMethod       `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	PaymentStatus       PaymentStatus       `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	VerifiedPaymentType VerifiedPaymentType `gorm:"type:varchar(20)" json:"verifiedPaymentType,omitempty"`

	// キャンセル時に必須。通知は外部チャネルに任せる
	CancelReason string `gorm:"type:text" json:"cancelReason,omitempty"`

	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// 終端ステータスかどうか
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// バッジ表示用のカテゴリ
func (s OrderStatus) DisplayCategory() string {
	switch s {
	case OrderStatusDelivered:
		return "success"
	case OrderStatusPending:
		return "warning"
	case OrderStatusCancelled:
		return "danger"
	case OrderStatusConfirmed, OrderStatusPreparing, OrderStatusOutForDelivery:
		return "info"
	default:
		return "secondary"
	}
}

func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// 前進遷移のテーブル。キャンセルは別経路（CanCancel）
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusPreparing},
	OrderStatusConfirmed:      {OrderStatusPreparing},
	OrderStatusPreparing:      {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// AllowedNext は現在ステータスから進める次ステータス一覧を返す。
func AllowedNext(from OrderStatus) []OrderStatus {
	next, ok := orderTransitions[from]
	if !ok {
		return []OrderStatus{}
	}
	return next
}

// CanTransition は from→to の前進遷移が合法かを返す。
func CanTransition(from OrderStatus, to OrderStatus) bool {
	for _, s := range AllowedNext(from) {
		if s == to {
			return true
		}
	}
	return false
}

// CanCancel は非終端ならtrue（キャンセルはどこからでも抜けられる）
func CanCancel(from OrderStatus) bool {
	return !from.IsTerminal()
}

// 管理画面に返す「今できる操作」
type OrderAction struct {
	Action string `json:"action"`
	// 遷移系のときだけ入る
	NextStatus OrderStatus `json:"next_status,omitempty"`
	// COD注文のmark_deliveredだけtrue
	RequiresPaymentConfirmation bool `json:"requires_payment_confirmation,omitempty"`
	// cancelだけtrue
	RequiresReason bool `json:"requires_reason,omitempty"`
}

// ActionsFor は注文の現在状態から合法な操作一覧を組み立てる。
// 終端（delivered / cancelled）は空になる。
func ActionsFor(o Order) []OrderAction {
	actions := []OrderAction{}

	for _, next := range AllowedNext(o.Status) {
		a := OrderAction{
			Action:     "transition",
			NextStatus: next,
		}
		// out_for_delivery→delivered はCODだと支払い確認が必要
		if next == OrderStatusDelivered && o.PaymentMethod == PaymentMethodCOD {
			a.RequiresPaymentConfirmation = true
		}
		actions = append(actions, a)
	}

	if CanCancel(o.Status) {
		actions = append(actions, OrderAction{
			Action:         "cancel",
			RequiresReason: true,
		})
	}

	return actions
}
