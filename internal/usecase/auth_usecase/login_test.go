package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// mocks
// =====================

type AdminRepoMock struct{ mock.Mock }

func (m *AdminRepoMock) FindByID(ctx context.Context, adminID int64) (*model.AdminUser, error) {
	args := m.Called(ctx, adminID)
	a, _ := args.Get(0).(*model.AdminUser)
	return a, args.Error(1)
}

func (m *AdminRepoMock) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*model.AdminUser)
	return a, args.Error(1)
}

func (m *AdminRepoMock) Update(ctx context.Context, admin *model.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *AdminRepoMock) IncrementTokenVersion(ctx context.Context, adminID int64) error {
	args := m.Called(ctx, adminID)
	return args.Error(0)
}

type PartnerRepoMock struct{ mock.Mock }

func (m *PartnerRepoMock) Create(ctx context.Context, p model.DeliveryPartner) (int64, error) {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) FindByID(ctx context.Context, partnerID int64) (model.DeliveryPartner, error) {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) FindByPhone(ctx context.Context, phone string) (model.DeliveryPartner, error) {
	args := m.Called(ctx, phone)
	p, _ := args.Get(0).(model.DeliveryPartner)
	return p, args.Error(1)
}

func (m *PartnerRepoMock) List(ctx context.Context, f repo.PartnerListFilter) ([]model.DeliveryPartner, error) {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) SetOnline(ctx context.Context, partnerID int64, online bool) error {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) SetActive(ctx context.Context, partnerID int64, active bool) error {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) SetDocumentsVerified(ctx context.Context, partnerID int64, verified bool) error {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) RecordDelivery(ctx context.Context, partnerID int64, earningsDelta int64) error {
	panic("not used in login tests")
}

func (m *PartnerRepoMock) CountOnline(ctx context.Context) (int64, error) {
	panic("not used in login tests")
}

type VerifierMock struct{ mock.Mock }

func (m *VerifierMock) Verify(plain string, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

type IssuerMock struct{ mock.Mock }

func (m *IssuerMock) Issue(subjectID int64, role string, tokenVersion int, now time.Time) (string, time.Time, error) {
	args := m.Called(subjectID, role, tokenVersion, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// 入力検証は常に通すダミー（弾くケースは個別に差し替え）
type validatorStub struct{ err error }

func (v *validatorStub) ValidateAdminLogin(ctx context.Context, email string, password string) error {
	return v.err
}

func (v *validatorStub) ValidatePartnerLogin(ctx context.Context, phone string, password string) error {
	return v.err
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

// =====================
// Admin login
// =====================

func TestAdminLogin_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	admin := &model.AdminUser{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: "hashed",
		TokenVersion: 3,
		IsActive:     true,
	}

	adminRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
	verifier.On("Verify", "password123", "hashed").Return(true)
	issuer.On("Issue", int64(1), "ADMIN", 3, now).Return("token-abc", now.Add(15*time.Minute), nil)

	//最終ログイン時刻が書かれる
	adminRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *model.AdminUser) bool {
		return a.ID == 1 && a.LastLoginAt != nil && a.LastLoginAt.Equal(now)
	})).Return(nil)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: now})

	out, err := uc.Execute(ctx, auth.AdminLoginInput{Email: "admin@example.com", Password: "password123"})
	assert.NoError(t, err)

	assert.Equal(t, "token-abc", out.Token.AccessToken)
	assert.Equal(t, 900, out.Token.ExpiresIn)
	assert.Equal(t, 3, out.Token.TokenVersion)

	//ハッシュはレスポンスに出さない
	assert.Equal(t, "", out.Admin.PasswordHash)

	adminRepo.AssertExpectations(t)
	verifier.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

func TestAdminLogin_UnknownEmail(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	adminRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return((*model.AdminUser)(nil), nil)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	_, err := uc.Execute(context.Background(), auth.AdminLoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	adminRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.AdminUser{
		ID: 1, Email: "admin@example.com", PasswordHash: "hashed", IsActive: true,
	}, nil)
	verifier.On("Verify", "wrong", "hashed").Return(false)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	_, err := uc.Execute(context.Background(), auth.AdminLoginInput{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminLogin_InactiveAccount(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	adminRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.AdminUser{
		ID: 1, Email: "admin@example.com", PasswordHash: "hashed", IsActive: false,
	}, nil)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	_, err := uc.Execute(context.Background(), auth.AdminLoginInput{Email: "admin@example.com", Password: "password123"})
	assert.Equal(t, auth.ErrAccountInactive, err)

	//停止アカウントはパスワード照合にすら進まない
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestAdminLogin_ValidationError(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{err: auth.ErrInvalidInput}, &fixedClock{now: time.Now()})

	_, err := uc.Execute(context.Background(), auth.AdminLoginInput{Email: "", Password: ""})
	assert.Equal(t, auth.ErrInvalidInput, err)

	adminRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// =====================
// Admin logout-all
// =====================

func TestAdminLogoutAll_BumpsTokenVersion(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	adminRepo.On("IncrementTokenVersion", mock.Anything, int64(1)).Return(nil)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	err := uc.LogoutAll(context.Background(), 1)
	assert.NoError(t, err)

	adminRepo.AssertExpectations(t)
}

func TestAdminLogoutAll_UnknownAdmin(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	adminRepo.On("IncrementTokenVersion", mock.Anything, int64(404)).Return(repo.ErrAdminNotFound)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	err := uc.LogoutAll(context.Background(), 404)
	assert.Equal(t, repo.ErrAdminNotFound, err)
}

func TestAdminLogoutAll_InvalidID(t *testing.T) {
	adminRepo := new(AdminRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	uc := auth.NewAdminLoginUsecase(adminRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	err := uc.LogoutAll(context.Background(), 0)
	assert.Equal(t, auth.ErrInvalidInput, err)

	adminRepo.AssertNotCalled(t, "IncrementTokenVersion", mock.Anything, mock.Anything)
}

// =====================
// Partner login
// =====================

func TestPartnerLogin_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	partnerRepo := new(PartnerRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	partnerRepo.On("FindByPhone", mock.Anything, "+81-9000000001").Return(model.DeliveryPartner{
		ID: 7, Phone: "+81-9000000001", PasswordHash: "hashed", IsActive: true,
	}, nil)
	verifier.On("Verify", "password123", "hashed").Return(true)

	//パートナーはtoken_versionを持たないので0固定
	issuer.On("Issue", int64(7), "PARTNER", 0, now).Return("token-p", now.Add(15*time.Minute), nil)

	uc := auth.NewPartnerLoginUsecase(partnerRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: now})

	out, err := uc.Execute(ctx, auth.PartnerLoginInput{Phone: "+81-9000000001", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "token-p", out.Token.AccessToken)
	assert.Equal(t, "", out.Partner.PasswordHash)

	partnerRepo.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

func TestPartnerLogin_UnknownPhone(t *testing.T) {
	partnerRepo := new(PartnerRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	partnerRepo.On("FindByPhone", mock.Anything, "+81-9999999999").Return(model.DeliveryPartner{}, repo.ErrNotFound)

	uc := auth.NewPartnerLoginUsecase(partnerRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	_, err := uc.Execute(context.Background(), auth.PartnerLoginInput{Phone: "+81-9999999999", Password: "password123"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

func TestPartnerLogin_Suspended(t *testing.T) {
	partnerRepo := new(PartnerRepoMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)

	partnerRepo.On("FindByPhone", mock.Anything, "+81-9000000002").Return(model.DeliveryPartner{
		ID: 8, Phone: "+81-9000000002", PasswordHash: "hashed", IsActive: false,
	}, nil)

	uc := auth.NewPartnerLoginUsecase(partnerRepo, verifier, issuer, &validatorStub{}, &fixedClock{now: time.Now()})

	_, err := uc.Execute(context.Background(), auth.PartnerLoginInput{Phone: "+81-9000000002", Password: "password123"})
	assert.Equal(t, auth.ErrAccountInactive, err)
}

// =====================
// bcrypt round trip
// =====================

func TestBcryptHasherAndVerifier(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	verifier := auth.NewBcryptPasswordVerifier()

	hash, err := hasher.Hash("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, verifier.Verify("password123", hash))
	assert.False(t, verifier.Verify("wrong", hash))
}
