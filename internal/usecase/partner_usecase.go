package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 登録時のパスワードハッシュ化の約束（bcrypt実装はauth_usecase側）
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type PartnerUsecase struct {
	partners repo.PartnerRepository
	audit    repo.AuditLogRepository
	hasher   PasswordHasher
}

func NewPartnerUsecase(partners repo.PartnerRepository, audit repo.AuditLogRepository, hasher PasswordHasher) *PartnerUsecase {
	return &PartnerUsecase{partners: partners, audit: audit, hasher: hasher}
}

type EnrollPartnerInput struct {
	Name          string
	Phone         string
	Password      string
	VehicleType   string
	VehicleNumber string
}

// パートナー一覧。online/activeはnilなら条件なし
func (u *PartnerUsecase) List(ctx context.Context, online *bool, active *bool) ([]PartnerOutput, error) {
	partners, err := u.partners.List(ctx, repo.PartnerListFilter{Online: online, Active: active})
	if err != nil {
		return []PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]PartnerOutput, 0, len(partners))
	for _, p := range partners {
		outs = append(outs, toPartnerOutput(p))
	}
	return outs, nil
}

// 手動登録（管理者入力）。登録直後は未確認・無効
func (u *PartnerUsecase) Enroll(ctx context.Context, actorAdminID int64, in EnrollPartnerInput) (PartnerOutput, error) {
	if actorAdminID <= 0 {
		return PartnerOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		return PartnerOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if phone == "" {
		return PartnerOutput{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}
	if len(in.Password) < 8 {
		return PartnerOutput{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	//電話番号の重複チェック
	if _, err := u.partners.FindByPhone(ctx, phone); err == nil {
		return PartnerOutput{}, NewHTTPError(http.StatusConflict, "phone already used")
	} else if err != repo.ErrNotFound {
		return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	p := model.DeliveryPartner{
		Name:          name,
		Phone:         phone,
		PasswordHash:  hash,
		VehicleType:   strings.TrimSpace(in.VehicleType),
		VehicleNumber: strings.TrimSpace(in.VehicleNumber),
		//書類確認が済むまでは動かせない
		IsOnline:          false,
		IsActive:          false,
		DocumentsVerified: false,
	}

	id, err := u.partners.Create(ctx, p)
	if err != nil {
		return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	p.ID = id

	return toPartnerOutput(p), nil
}

// 書類確認済みにする
func (u *PartnerUsecase) Verify(ctx context.Context, actorAdminID int64, partnerID int64) (PartnerOutput, error) {
	if actorAdminID <= 0 {
		return PartnerOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partnerID <= 0 {
		return PartnerOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.partners.FindByID(ctx, partnerID)
	if err == repo.ErrNotFound {
		return PartnerOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.DocumentsVerified {
		if err := u.partners.SetDocumentsVerified(ctx, partnerID, true); err != nil {
			return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// ★監査ログ（VERIFY_PARTNER）
		if err := u.audit.Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionVerifyPartner,
			ResourceType: model.AuditResourcePartner,
			ResourceID:   partnerID,
			BeforeJSON:   `{"documents_verified":false}`,
			AfterJSON:    `{"documents_verified":true}`,
			CreatedAt:    time.Now(),
		}); err != nil {
			return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p.DocumentsVerified = true
	}

	return toPartnerOutput(p), nil
}

// 有効化/停止。書類未確認のままの有効化は不可
func (u *PartnerUsecase) SetActive(ctx context.Context, actorAdminID int64, partnerID int64, active bool) (PartnerOutput, error) {
	if actorAdminID <= 0 {
		return PartnerOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partnerID <= 0 {
		return PartnerOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.partners.FindByID(ctx, partnerID)
	if err == repo.ErrNotFound {
		return PartnerOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if active && !p.DocumentsVerified {
		return PartnerOutput{}, NewHTTPError(http.StatusBadRequest, "documents not verified")
	}

	if p.IsActive != active {
		if err := u.partners.SetActive(ctx, partnerID, active); err != nil {
			return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// ★監査ログ（SET_PARTNER_ACTIVE）
		beforeJSON := `{"is_active":` + boolJSON(p.IsActive) + `}`
		afterJSON := `{"is_active":` + boolJSON(active) + `}`
		if err := u.audit.Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionSetPartnerActive,
			ResourceType: model.AuditResourcePartner,
			ResourceID:   partnerID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p.IsActive = active
	}

	return toPartnerOutput(p), nil
}
