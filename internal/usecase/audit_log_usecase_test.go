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

func TestAuditLogUsecase_List_InvalidLimit(t *testing.T) {
	auditRepo := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(auditRepo)

	_, err := uc.List(context.Background(), usecase.AuditLogListInput{Limit: 201})
	assertErrContains(t, err, "invalid limit")
}

func TestAuditLogUsecase_List_BuildsFilter(t *testing.T) {
	ctx := context.Background()

	auditRepo := new(AuditRepoMock)

	auditRepo.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == model.AuditActionCancelOrder &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceOrder &&
			f.Limit == 10
	})).Return([]model.AuditLog{
		{ID: 1, Action: model.AuditActionCancelOrder, ResourceType: model.AuditResourceOrder},
	}, nil)

	uc := usecase.NewAuditLogUsecase(auditRepo)

	out, err := uc.List(ctx, usecase.AuditLogListInput{
		Action:       "CANCEL_ORDER",
		ResourceType: "order",
		Limit:        10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Logs))

	auditRepo.AssertExpectations(t)
}

func TestAuditLogUsecase_List_EmptyResultIsNotNil(t *testing.T) {
	ctx := context.Background()

	auditRepo := new(AuditRepoMock)
	auditRepo.On("List", mock.Anything, mock.Anything).Return([]model.AuditLog(nil), nil)

	uc := usecase.NewAuditLogUsecase(auditRepo)

	out, err := uc.List(ctx, usecase.AuditLogListInput{})
	assert.NoError(t, err)
	assert.NotNil(t, out.Logs)
	assert.Equal(t, 0, len(out.Logs))
}
