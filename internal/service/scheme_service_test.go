package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rsawant/invest-engine/internal/domain"
	"github.com/rsawant/invest-engine/internal/scheme"
	schemeService "github.com/rsawant/invest-engine/internal/service"
	customError "github.com/rsawant/invest-engine/pkg/errors"
	"github.com/rsawant/invest-engine/tests/mocks"
)

func newSchemeService(
	entityRepo *mocks.MockEntityRepository,
	depositRepo *mocks.MockDepositRepository,
	scheduleRepo *mocks.MockScheduleRepository,
) *schemeService.SchemeService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	projector := scheme.NewProjector(nil, time.Minute, log)
	return schemeService.NewSchemeService(entityRepo, depositRepo, scheduleRepo, projector, log)
}

func schemeDraft() *domain.CreateSchemeRequest {
	return &domain.CreateSchemeRequest{
		Name:                    "Annual FD",
		MinAmount:               decimal.NewFromInt(1000),
		InterestPercent:         decimal.NewFromInt(5),
		InterestCalculationDays: 365,
		TransferScheduleDays:    365,
		InterestTransferType:    []domain.Bucket{domain.BucketMain},
		InterestDivision:        domain.InterestDivision{MainWallet: decimal.NewFromInt(100)},
		MaturityDays:            450,
		MaturityTransferDivision: domain.MaturityDivision{
			MainWallet: decimal.NewFromInt(100),
		},
	}
}

func approvedSchemeEntity(t *testing.T, published bool) *domain.ReviewEntity {
	t.Helper()
	sch, err := scheme.Validate(schemeDraft())
	require.NoError(t, err)
	sch.IsPublished = published
	sch.IsActive = published

	status := domain.StatusPending
	if published {
		status = domain.StatusApproved
	}

	entity := &domain.ReviewEntity{
		ID:      sch.SchemeID,
		Kind:    domain.KindScheme,
		Status:  status,
		Version: 2,
	}
	require.NoError(t, entity.SetPayload(sch))
	return entity
}

func TestCreateScheme(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newSchemeService(entityRepo, &mocks.MockDepositRepository{}, &mocks.MockScheduleRepository{})

	entityRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEntity) bool {
		return e.Kind == domain.KindScheme && e.Status == domain.StatusPending
	})).Return(nil)

	resp, err := svc.CreateScheme(context.Background(), schemeDraft())

	require.NoError(t, err)
	assert.Equal(t, resp.Scheme.SchemeID, resp.Entity.ID)
	assert.False(t, resp.Scheme.IsPublished)
	entityRepo.AssertExpectations(t)
}

func TestCreateScheme_ValidationFailureSkipsPersistence(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newSchemeService(entityRepo, &mocks.MockDepositRepository{}, &mocks.MockScheduleRepository{})

	draft := schemeDraft()
	draft.InterestDivision = domain.InterestDivision{
		Scheme:       decimal.NewFromInt(40),
		MainWallet:   decimal.NewFromInt(30),
		IncomeWallet: decimal.NewFromInt(29),
	}

	_, err := svc.CreateScheme(context.Background(), draft)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrDivisionMismatch)
	entityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDeposit(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	depositRepo := &mocks.MockDepositRepository{}
	svc := newSchemeService(entityRepo, depositRepo, &mocks.MockScheduleRepository{})

	entity := approvedSchemeEntity(t, true)
	entityRepo.On("GetByID", mock.Anything, entity.ID).Return(entity, nil)
	depositRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Deposit) bool {
		return d.SchemeID == entity.ID && d.Principal.Equal(decimal.NewFromInt(10000))
	}), mock.MatchedBy(func(events []*domain.ScheduleEvent) bool {
		if len(events) != 2 {
			return false
		}
		for _, e := range events {
			if e.DepositID == nil || e.Status != domain.EventStatusPending {
				return false
			}
		}
		return true
	})).Return(nil)

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.RegisterDeposit(context.Background(), entity.ID, &domain.CreateDepositRequest{
		InvestorID: "inv-7",
		Principal:  decimal.NewFromInt(10000),
		StartDate:  &start,
	})

	require.NoError(t, err)
	require.Len(t, resp.Schedule, 2)
	assert.True(t, resp.Schedule[0].NetAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, start.AddDate(0, 0, 450), resp.Schedule[1].DueDate)
	depositRepo.AssertExpectations(t)
}

func TestRegisterDeposit_SchemeNotOpen(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	depositRepo := &mocks.MockDepositRepository{}
	svc := newSchemeService(entityRepo, depositRepo, &mocks.MockScheduleRepository{})

	entity := approvedSchemeEntity(t, false)
	entityRepo.On("GetByID", mock.Anything, entity.ID).Return(entity, nil)

	_, err := svc.RegisterDeposit(context.Background(), entity.ID, &domain.CreateDepositRequest{
		InvestorID: "inv-7",
		Principal:  decimal.NewFromInt(10000),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrIllegalTransition)
	depositRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterDeposit_PrincipalBounds(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newSchemeService(entityRepo, &mocks.MockDepositRepository{}, &mocks.MockScheduleRepository{})

	entity := approvedSchemeEntity(t, true)
	entityRepo.On("GetByID", mock.Anything, entity.ID).Return(entity, nil)

	_, err := svc.RegisterDeposit(context.Background(), entity.ID, &domain.CreateDepositRequest{
		InvestorID: "inv-7",
		Principal:  decimal.NewFromInt(500),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrInvalidRange)
}

func TestProject(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newSchemeService(entityRepo, &mocks.MockDepositRepository{}, &mocks.MockScheduleRepository{})

	entity := approvedSchemeEntity(t, true)
	entityRepo.On("GetByID", mock.Anything, entity.ID).Return(entity, nil)

	projection, err := svc.Project(context.Background(), entity.ID, decimal.NewFromInt(10000))

	require.NoError(t, err)
	assert.True(t, projection.TotalInterest.Equal(decimal.NewFromInt(500)))
	assert.True(t, projection.TotalPayout.Equal(decimal.NewFromInt(10500)))
}

func TestProject_RejectsNonPositivePrincipal(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newSchemeService(entityRepo, &mocks.MockDepositRepository{}, &mocks.MockScheduleRepository{})

	entity := approvedSchemeEntity(t, true)
	entityRepo.On("GetByID", mock.Anything, entity.ID).Return(entity, nil)

	_, err := svc.Project(context.Background(), entity.ID, decimal.Zero)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrInvalidRange)
}
