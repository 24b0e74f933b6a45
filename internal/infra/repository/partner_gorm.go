package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PartnerGormRepository struct {
	db *gorm.DB
}

func NewPartnerGormRepository(db *gorm.DB) *PartnerGormRepository {
	return &PartnerGormRepository{db: db}
}

func (r *PartnerGormRepository) Create(ctx context.Context, p model.DeliveryPartner) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *PartnerGormRepository) FindByID(ctx context.Context, partnerID int64) (model.DeliveryPartner, error) {
	var p model.DeliveryPartner
	err := r.db.WithContext(ctx).Where("id = ?", partnerID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DeliveryPartner{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DeliveryPartner{}, err
	}
	return p, nil
}

func (r *PartnerGormRepository) FindByPhone(ctx context.Context, phone string) (model.DeliveryPartner, error) {
	var p model.DeliveryPartner
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DeliveryPartner{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DeliveryPartner{}, err
	}
	return p, nil
}

func (r *PartnerGormRepository) List(ctx context.Context, f repo.PartnerListFilter) ([]model.DeliveryPartner, error) {
	q := r.db.WithContext(ctx).Model(&model.DeliveryPartner{})

	//online 絞り込み
	if f.Online != nil {
		q = q.Where("is_online = ?", *f.Online)
	}

	//active 絞り込み
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	var items []model.DeliveryPartner
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		return []model.DeliveryPartner{}, err
	}
	return items, nil
}

func (r *PartnerGormRepository) SetOnline(ctx context.Context, partnerID int64, online bool) error {
	return r.updateColumn(ctx, partnerID, "is_online", online)
}

func (r *PartnerGormRepository) SetActive(ctx context.Context, partnerID int64, active bool) error {
	return r.updateColumn(ctx, partnerID, "is_active", active)
}

func (r *PartnerGormRepository) SetDocumentsVerified(ctx context.Context, partnerID int64, verified bool) error {
	return r.updateColumn(ctx, partnerID, "documents_verified", verified)
}

func (r *PartnerGormRepository) updateColumn(ctx context.Context, partnerID int64, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&model.DeliveryPartner{}).
		Where("id = ?", partnerID).
		Update(column, value)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 配達完了の集計をまとめて+1する
func (r *PartnerGormRepository) RecordDelivery(ctx context.Context, partnerID int64, earningsDelta int64) error {
	res := r.db.WithContext(ctx).Model(&model.DeliveryPartner{}).
		Where("id = ?", partnerID).
		Updates(map[string]interface{}{
			"total_deliveries":     gorm.Expr("total_deliveries + ?", 1),
			"completed_deliveries": gorm.Expr("completed_deliveries + ?", 1),
			"earnings":             gorm.Expr("earnings + ?", earningsDelta),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PartnerGormRepository) CountOnline(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.DeliveryPartner{}).
		Where("is_online = ? AND is_active = ?", true, true).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
