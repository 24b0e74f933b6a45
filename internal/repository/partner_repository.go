package repository

import (
	"context"

	"app/internal/domain/model"
)

// パートナー一覧の絞り込み（nilなら条件なし）。
type PartnerListFilter struct {
	Online *bool
	Active *bool
}

type PartnerRepository interface {
	Create(ctx context.Context, p model.DeliveryPartner) (int64, error)
	FindByID(ctx context.Context, partnerID int64) (model.DeliveryPartner, error)

	//ポータルのログインは電話番号
	FindByPhone(ctx context.Context, phone string) (model.DeliveryPartner, error)

	List(ctx context.Context, f PartnerListFilter) ([]model.DeliveryPartner, error)

	SetOnline(ctx context.Context, partnerID int64, online bool) error
	SetActive(ctx context.Context, partnerID int64, active bool) error
	SetDocumentsVerified(ctx context.Context, partnerID int64, verified bool) error

	//配達完了の集計更新（件数＋報酬）
	RecordDelivery(ctx context.Context, partnerID int64, earningsDelta int64) error

	//ダッシュボード用
	CountOnline(ctx context.Context) (int64, error)
}
