package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// List tests
// =====================

func TestPartnerUsecase_List_PassesFilter(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	online := true
	f := repo.PartnerListFilter{Online: &online}

	partnersRepo.On("List", mock.Anything, f).Return([]model.DeliveryPartner{
		{ID: 1, Name: "佐藤 健", IsOnline: true},
	}, nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	outs, err := uc.List(ctx, &online, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.True(t, outs[0].IsOnline)

	partnersRepo.AssertExpectations(t)
}

// =====================
// Enroll tests
// =====================

func TestPartnerUsecase_Enroll_PhoneAlreadyUsed(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	partnersRepo.On("FindByPhone", mock.Anything, "+81-9000000001").Return(model.DeliveryPartner{ID: 1}, nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	_, err := uc.Enroll(ctx, 1, usecase.EnrollPartnerInput{
		Name:     "佐藤 健",
		Phone:    "+81-9000000001",
		Password: "password123",
	})
	assertErrContains(t, err, "phone already used")

	partnersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPartnerUsecase_Enroll_PasswordTooShort(t *testing.T) {
	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	_, err := uc.Enroll(context.Background(), 1, usecase.EnrollPartnerInput{
		Name:     "佐藤 健",
		Phone:    "+81-9000000001",
		Password: "short",
	})
	assertErrContains(t, err, "password too short")
}

func TestPartnerUsecase_Enroll_Success_StartsUnverifiedInactive(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	partnersRepo.On("FindByPhone", mock.Anything, "+81-9000000002").Return(model.DeliveryPartner{}, repo.ErrNotFound)
	hasher.On("Hash", "password123").Return("hashed", nil)

	partnersRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.DeliveryPartner) bool {
		//登録直後は未確認・無効・オフライン
		return p.PasswordHash == "hashed" &&
			!p.IsOnline && !p.IsActive && !p.DocumentsVerified
	})).Return(int64(5), nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	out, err := uc.Enroll(ctx, 1, usecase.EnrollPartnerInput{
		Name:        "鈴木 一郎 ",
		Phone:       " +81-9000000002",
		Password:    "password123",
		VehicleType: "bike",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "鈴木 一郎", out.Name)
	assert.False(t, out.IsActive)
	assert.False(t, out.DocumentsVerified)

	partnersRepo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

// =====================
// Verify tests
// =====================

func TestPartnerUsecase_Verify_Success_Audits(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	partnersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.DeliveryPartner{
		ID: 7, DocumentsVerified: false,
	}, nil)
	partnersRepo.On("SetDocumentsVerified", mock.Anything, int64(7), true).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionVerifyPartner &&
			a.ResourceType == model.AuditResourcePartner &&
			a.ResourceID == int64(7)
	})).Return(nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	out, err := uc.Verify(ctx, 1, 7)
	assert.NoError(t, err)
	assert.True(t, out.DocumentsVerified)

	partnersRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestPartnerUsecase_Verify_Idempotent(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	//確認済みなら何もしない
	partnersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.DeliveryPartner{
		ID: 7, DocumentsVerified: true,
	}, nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	out, err := uc.Verify(ctx, 1, 7)
	assert.NoError(t, err)
	assert.True(t, out.DocumentsVerified)

	partnersRepo.AssertNotCalled(t, "SetDocumentsVerified", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// SetActive tests
// =====================

func TestPartnerUsecase_SetActive_RequiresVerifiedDocuments(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	partnersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.DeliveryPartner{
		ID: 7, DocumentsVerified: false,
	}, nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	_, err := uc.SetActive(ctx, 1, 7, true)
	assertErrContains(t, err, "documents not verified")

	partnersRepo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestPartnerUsecase_SetActive_Activate_Audits(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	partnersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.DeliveryPartner{
		ID: 7, DocumentsVerified: true, IsActive: false,
	}, nil)
	partnersRepo.On("SetActive", mock.Anything, int64(7), true).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionSetPartnerActive &&
			a.BeforeJSON == `{"is_active":false}` &&
			a.AfterJSON == `{"is_active":true}`
	})).Return(nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	out, err := uc.SetActive(ctx, 1, 7, true)
	assert.NoError(t, err)
	assert.True(t, out.IsActive)

	partnersRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestPartnerUsecase_SetActive_Deactivate_AllowedWithoutDocs(t *testing.T) {
	ctx := context.Background()

	partnersRepo := new(PartnerRepoMock)
	auditRepo := new(AuditRepoMock)
	hasher := new(HasherMock)

	//停止はいつでもできる
	partnersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.DeliveryPartner{
		ID: 7, DocumentsVerified: false, IsActive: true,
	}, nil)
	partnersRepo.On("SetActive", mock.Anything, int64(7), false).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewPartnerUsecase(partnersRepo, auditRepo, hasher)

	out, err := uc.SetActive(ctx, 1, 7, false)
	assert.NoError(t, err)
	assert.False(t, out.IsActive)
}
