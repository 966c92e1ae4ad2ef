package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rsawant/invest-engine/internal/domain"
)

type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Create(ctx context.Context, e *domain.ReviewEntity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, id string) (*domain.ReviewEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewEntity), args.Error(1)
}

func (m *MockEntityRepository) ApplyTransition(ctx context.Context, e *domain.ReviewEntity, record *domain.ReviewRecord, fromVersion int) error {
	args := m.Called(ctx, e, record, fromVersion)
	return args.Error(0)
}

type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *domain.Deposit, events []*domain.ScheduleEvent) error {
	args := m.Called(ctx, deposit, events)
	return args.Error(0)
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.Deposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) GetBySchemeID(ctx context.Context, schemeID string) ([]*domain.Deposit, error) {
	args := m.Called(ctx, schemeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deposit), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) CreateEvents(ctx context.Context, events []*domain.ScheduleEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByDepositID(ctx context.Context, depositID string) ([]*domain.ScheduleEvent, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleEvent), args.Error(1)
}

func (m *MockScheduleRepository) GetReferenceBySchemeID(ctx context.Context, schemeID string) ([]*domain.ScheduleEvent, error) {
	args := m.Called(ctx, schemeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleEvent), args.Error(1)
}

func (m *MockScheduleRepository) GetDue(ctx context.Context, asOf time.Time, limit int) ([]*domain.ScheduleEvent, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleEvent), args.Error(1)
}

func (m *MockScheduleRepository) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIdentityIssuer struct {
	mock.Mock
}

func (m *MockIdentityIssuer) IssueCredentials(ctx context.Context, entity *domain.ReviewEntity) (string, error) {
	args := m.Called(ctx, entity)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipient, template string, data map[string]interface{}) error {
	args := m.Called(ctx, recipient, template, data)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Credit(ctx context.Context, walletID string, amount decimal.Decimal, bucket domain.Bucket) error {
	args := m.Called(ctx, walletID, amount, bucket)
	return args.Error(0)
}

type MockEscrowSettler struct {
	mock.Mock
}

func (m *MockEscrowSettler) Settle(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}
