package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminUserUsecase struct {
	users repo.UserRepository
	audit repo.AuditLogRepository
}

func NewAdminUserUsecase(users repo.UserRepository, audit repo.AuditLogRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, audit: audit}
}

type SetBlacklistInput struct {
	Blacklisted bool
	Reason      string
}

// 顧客一覧（ページング）
func (u *AdminUserUsecase) List(ctx context.Context, page int, limit int) (UserListOutput, error) {
	if page < 1 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	users, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserOutput, 0, len(users))
	for _, usr := range users {
		outs = append(outs, toUserOutput(usr))
	}

	return UserListOutput{
		Users:   outs,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasPrev: page > 1,
		HasNext: hasNextPage(page, limit, total),
	}, nil
}

// ブラックリスト切替。登録時は理由必須、解除時は理由をクリア
func (u *AdminUserUsecase) SetBlacklist(ctx context.Context, actorAdminID int64, userID int64, in SetBlacklistInput) (UserOutput, error) {
	if actorAdminID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reason := strings.TrimSpace(in.Reason)
	if in.Blacklisted && reason == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "reason required")
	}
	if !in.Blacklisted {
		reason = ""
	}

	usr, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.users.SetBlacklist(ctx, userID, in.Blacklisted, reason); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ★監査ログ（SET_USER_BLACKLIST）
	beforeJSON := `{"is_blacklisted":` + boolJSON(usr.IsBlacklisted) + `}`
	afterJSON := `{"is_blacklisted":` + boolJSON(in.Blacklisted) + `,"reason":` + quoteJSON(reason) + `}`
	if err := u.audit.Create(ctx, model.AuditLog{
		ActorAdminID: actorAdminID,
		Action:       model.AuditActionSetUserBlacklist,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	usr.IsBlacklisted = in.Blacklisted
	usr.BlacklistReason = reason
	return toUserOutput(usr), nil
}
