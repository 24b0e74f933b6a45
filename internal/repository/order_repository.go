package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 管理者用の注文一覧の絞り込み条件。
type OrderListFilter struct {
	Page      int
	Limit     int
	Status    string
	UserID    *int64
	PartnerID *int64
	From      *time.Time
	To        *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//注文は外部の注文システムが作る。ここではシード/テスト用
	Create(ctx context.Context, order model.Order) (int64, error)

	//管理者用の注文一覧（total込み）
	ListAdmin(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)

	//パートナーに割り当て中の進行中注文
	ListActiveByPartnerID(ctx context.Context, partnerID int64) ([]model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string) error

	//delivered遷移。支払い確定と操作メモも同時に書く
	MarkDelivered(ctx context.Context, orderID int64, deliveredAt time.Time, paymentStatus model.PaymentStatus, verified model.VerifiedPaymentType, note string) error

	//キャンセル（理由必須なのはusecase側で見る）
	Cancel(ctx context.Context, orderID int64, reason string) error

	AssignPartner(ctx context.Context, orderID int64, partnerID int64) error

	//ダッシュボード用のステータス別件数
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
}
