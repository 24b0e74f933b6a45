package auth

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"
)

type PartnerLoginInput struct {
	Phone    string
	Password string
}

type PartnerLoginOutput struct {
	Partner model.DeliveryPartner `json:"partner"`
	Token   JwtAccessToken        `json:"token"`
}

// パートナーポータルのログイン。IDは電話番号
type PartnerLoginUsecase struct {
	partnerRepo repository.PartnerRepository
	verifier    PasswordVerifier
	issuer      AccessTokenIssuer
	validator   LoginValidator
	clock       Clock
}

func NewPartnerLoginUsecase(
	partnerRepo repository.PartnerRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	validator LoginValidator,
	clock Clock,
) *PartnerLoginUsecase {
	return &PartnerLoginUsecase{
		partnerRepo: partnerRepo,
		verifier:    verifier,
		issuer:      issuer,
		validator:   validator,
		clock:       clock,
	}
}

func (u *PartnerLoginUsecase) Execute(ctx context.Context, in PartnerLoginInput) (PartnerLoginOutput, error) {
	var out PartnerLoginOutput

	//入力チェック
	if err := u.validator.ValidatePartnerLogin(ctx, in.Phone, in.Password); err != nil {
		return out, ErrInvalidInput
	}

	//電話番号でパートナー取得
	p, err := u.partnerRepo.FindByPhone(ctx, in.Phone)
	if err != nil {
		if err == repository.ErrNotFound {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//停止中はログイン不可
	if !p.IsActive {
		return out, ErrAccountInactive
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, p.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行（パートナーはtoken_versionを持たないので0固定）
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(p.ID, "PARTNER", 0, now)
	if err != nil {
		return out, err
	}

	//出力（ハッシュは返さない）
	p.PasswordHash = ""

	out.Partner = p
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	return out, nil
}
