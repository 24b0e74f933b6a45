package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	partners   repo.PartnerRepository
	users      repo.UserRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Partners() repo.PartnerRepository     { return r.partners }
func (r *TxReposMock) Users() repo.UserRepository           { return r.users }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	panic("not used in usecase tests")
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListActiveByPartnerID(ctx context.Context, partnerID int64) ([]model.Order, error) {
	args := m.Called(ctx, partnerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string) error {
	args := m.Called(ctx, orderID, status, note)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkDelivered(ctx context.Context, orderID int64, deliveredAt time.Time, paymentStatus model.PaymentStatus, verified model.VerifiedPaymentType, note string) error {
	args := m.Called(ctx, orderID, deliveredAt, paymentStatus, verified, note)
	return args.Error(0)
}

func (m *OrderRepoMock) Cancel(ctx context.Context, orderID int64, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

func (m *OrderRepoMock) AssignPartner(ctx context.Context, orderID int64, partnerID int64) error {
	args := m.Called(ctx, orderID, partnerID)
	return args.Error(0)
}

func (m *OrderRepoMock) CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[model.OrderStatus]int64)
	return counts, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	panic("not used in usecase tests")
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type PartnerRepoMock struct{ mock.Mock }

func (m *PartnerRepoMock) Create(ctx context.Context, p model.DeliveryPartner) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PartnerRepoMock) FindByID(ctx context.Context, partnerID int64) (model.DeliveryPartner, error) {
	args := m.Called(ctx, partnerID)
	p, _ := args.Get(0).(model.DeliveryPartner)
	return p, args.Error(1)
}

func (m *PartnerRepoMock) FindByPhone(ctx context.Context, phone string) (model.DeliveryPartner, error) {
	args := m.Called(ctx, phone)
	p, _ := args.Get(0).(model.DeliveryPartner)
	return p, args.Error(1)
}

func (m *PartnerRepoMock) List(ctx context.Context, f repo.PartnerListFilter) ([]model.DeliveryPartner, error) {
	args := m.Called(ctx, f)
	partners, _ := args.Get(0).([]model.DeliveryPartner)
	return partners, args.Error(1)
}

func (m *PartnerRepoMock) SetOnline(ctx context.Context, partnerID int64, online bool) error {
	args := m.Called(ctx, partnerID, online)
	return args.Error(0)
}

func (m *PartnerRepoMock) SetActive(ctx context.Context, partnerID int64, active bool) error {
	args := m.Called(ctx, partnerID, active)
	return args.Error(0)
}

func (m *PartnerRepoMock) SetDocumentsVerified(ctx context.Context, partnerID int64, verified bool) error {
	args := m.Called(ctx, partnerID, verified)
	return args.Error(0)
}

func (m *PartnerRepoMock) RecordDelivery(ctx context.Context, partnerID int64, earningsDelta int64) error {
	args := m.Called(ctx, partnerID, earningsDelta)
	return args.Error(0)
}

func (m *PartnerRepoMock) CountOnline(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context, page int, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) SetBlacklist(ctx context.Context, userID int64, blacklisted bool, reason string) error {
	args := m.Called(ctx, userID, blacklisted, reason)
	return args.Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
