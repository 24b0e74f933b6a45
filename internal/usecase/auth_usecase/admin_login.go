package auth

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"
)

// handlerからusecaseに渡す入力
type AdminLoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type AdminLoginOutput struct {
	Admin model.AdminUser `json:"admin"`
	Token JwtAccessToken  `json:"token"`
}

type AdminLoginUsecase struct {
	adminRepo repository.AdminUserRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	validator LoginValidator
	clock     Clock
}

func NewAdminLoginUsecase(
	adminRepo repository.AdminUserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	validator LoginValidator,
	clock Clock,
) *AdminLoginUsecase {
	return &AdminLoginUsecase{
		adminRepo: adminRepo,
		verifier:  verifier,
		issuer:    issuer,
		validator: validator,
		clock:     clock,
	}
}

// 管理コンソールのログイン処理を実行する
func (u *AdminLoginUsecase) Execute(ctx context.Context, in AdminLoginInput) (AdminLoginOutput, error) {
	var out AdminLoginOutput

	//入力チェック
	if err := u.validator.ValidateAdminLogin(ctx, in.Email, in.Password); err != nil {
		return out, ErrInvalidInput
	}

	//emailで管理者取得
	admin, err := u.adminRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return out, err
	}
	if admin == nil {
		return out, ErrInvalidCredentials
	}

	//停止アカウントはログイン不可
	if !admin.IsActive {
		return out, ErrAccountInactive
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, admin.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(admin.ID, "ADMIN", admin.TokenVersion, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	admin.LastLoginAt = &now
	if err := u.adminRepo.Update(ctx, admin); err != nil {
		return out, err
	}

	//出力（ハッシュは返さない）
	safeAdmin := *admin
	safeAdmin.PasswordHash = ""

	out.Admin = safeAdmin
	out.Token = JwtAccessToken{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessExp.Sub(now).Seconds()),
		TokenVersion: admin.TokenVersion,
	}
	return out, nil
}

// 全端末の強制ログアウト。token_versionを+1して発行済みトークンを全部無効化する
func (u *AdminLoginUsecase) LogoutAll(ctx context.Context, adminID int64) error {
	if adminID <= 0 {
		return ErrInvalidInput
	}
	return u.adminRepo.IncrementTokenVersion(ctx, adminID)
}
