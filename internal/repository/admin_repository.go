package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// 管理者が見つかりませんを統一
var ErrAdminNotFound = errors.New("admin not found")

type AdminUserRepository interface {
	FindByID(ctx context.Context, adminID int64) (*model.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)

	// 最終ログイン更新など
	Update(ctx context.Context, admin *model.AdminUser) error

	//トークンのバージョンを＋１（強制ログアウト）
	IncrementTokenVersion(ctx context.Context, adminID int64) error
}
