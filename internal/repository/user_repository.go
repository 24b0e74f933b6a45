package repository

import (
	"context"

	"app/internal/domain/model"
)

// 顧客の保存・取得を約束
type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
	List(ctx context.Context, page int, limit int) ([]model.User, int64, error)

	//ブラックリスト切替（解除時はreasonを空にする）
	SetBlacklist(ctx context.Context, userID int64, blacklisted bool, reason string) error

	//ダッシュボード用
	Count(ctx context.Context) (int64, error)
}
