package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type adminGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewAdminGormRepository(db *gorm.DB) domainrepo.AdminUserRepository {
	return &adminGormRepository{db: db}
}

// IDで管理者を1件取得
func (r *adminGormRepository) FindByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	var a model.AdminUser

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

// emailで管理者を1件取得
func (r *adminGormRepository) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var a model.AdminUser

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&a).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

// 管理者を更新。
func (r *adminGormRepository) Update(ctx context.Context, admin *model.AdminUser) error {
	if err := r.db.WithContext(ctx).Save(admin).Error; err != nil {
		return err
	}
	return nil
}

// token_versionを+1 します。
func (r *adminGormRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1))

	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrAdminNotFound
	}
	return nil
}
