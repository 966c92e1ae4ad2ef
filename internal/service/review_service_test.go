package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rsawant/invest-engine/internal/domain"
	reviewService "github.com/rsawant/invest-engine/internal/service"
	"github.com/rsawant/invest-engine/internal/workflow"
	customError "github.com/rsawant/invest-engine/pkg/errors"
	"github.com/rsawant/invest-engine/tests/mocks"
)

func newReviewService(
	entityRepo *mocks.MockEntityRepository,
	scheduleRepo *mocks.MockScheduleRepository,
	identity *mocks.MockIdentityIssuer,
	notifier *mocks.MockNotifier,
	escrow *mocks.MockEscrowSettler,
) *reviewService.ReviewService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return reviewService.NewReviewService(entityRepo, scheduleRepo, identity, notifier, escrow, log, true)
}

func pendingSchemeEntity(t *testing.T) *domain.ReviewEntity {
	t.Helper()
	entity := &domain.ReviewEntity{
		ID:      "FDS-ABCD1234",
		Kind:    domain.KindScheme,
		Status:  domain.StatusPending,
		Version: 1,
	}
	scheme := &domain.FDScheme{
		SchemeID:                "FDS-ABCD1234",
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
	require.NoError(t, entity.SetPayload(scheme))
	return entity
}

func TestDecide_SchemeApprovePublishesAndMaterializes(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	scheduleRepo := &mocks.MockScheduleRepository{}
	identity := &mocks.MockIdentityIssuer{}
	notifier := &mocks.MockNotifier{}
	escrow := &mocks.MockEscrowSettler{}
	svc := newReviewService(entityRepo, scheduleRepo, identity, notifier, escrow)

	entity := pendingSchemeEntity(t)

	entityRepo.On("GetByID", mock.Anything, entity.ID).Return(entity, nil)
	entityRepo.On("ApplyTransition", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEntity) bool {
		scheme, err := domain.SchemeFromEntity(e)
		// Publish flags ride inside the same write as the status change.
		return err == nil && e.Status == domain.StatusApproved && e.Version == 2 &&
			scheme.IsPublished && scheme.IsActive
	}), mock.Anything, 1).Return(nil)
	scheduleRepo.On("CreateEvents", mock.Anything, mock.MatchedBy(func(events []*domain.ScheduleEvent) bool {
		return len(events) == 2 && events[0].Type == domain.EventInterest
	})).Return(nil)
	notifier.On("Notify", mock.Anything, entity.ID, "review_decision", mock.Anything).Return(nil)

	updated, err := svc.Decide(context.Background(), entity.ID, workflow.Decision{
		Action:  domain.ActionApprove,
		ActorID: "admin1",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.Len(t, updated.History, 1)
	assert.Equal(t, domain.StatusPending, updated.History[0].FromStatus)

	entityRepo.AssertExpectations(t)
	scheduleRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDecide_SideEffectFailureDoesNotFailDecision(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	scheduleRepo := &mocks.MockScheduleRepository{}
	identity := &mocks.MockIdentityIssuer{}
	notifier := &mocks.MockNotifier{}
	escrow := &mocks.MockEscrowSettler{}
	svc := newReviewService(entityRepo, scheduleRepo, identity, notifier, escrow)

	entity := &domain.ReviewEntity{
		ID:      "biz-1",
		Kind:    domain.KindBusiness,
		Status:  domain.StatusNew,
		Version: 3,
	}

	entityRepo.On("GetByID", mock.Anything, "biz-1").Return(entity, nil)
	entityRepo.On("ApplyTransition", mock.Anything, mock.Anything, mock.Anything, 3).Return(nil)
	identity.On("IssueCredentials", mock.Anything, mock.Anything).Return("", errors.New("identity service down"))
	notifier.On("Notify", mock.Anything, "biz-1", "review_decision", mock.Anything).Return(errors.New("smtp timeout"))

	checklist := domain.NewVerificationChecklist()
	for _, s := range domain.ChecklistSections() {
		checklist.SetVerified(s, true)
	}

	updated, err := svc.Decide(context.Background(), "biz-1", workflow.Decision{
		Action:    domain.ActionApprove,
		ActorID:   "admin1",
		Checklist: checklist,
	})

	// The transition is committed; collaborator failures are logged only.
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, updated.Status)

	identity.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDecide_IllegalTransitionDoesNotPersist(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newReviewService(entityRepo, &mocks.MockScheduleRepository{}, &mocks.MockIdentityIssuer{}, &mocks.MockNotifier{}, &mocks.MockEscrowSettler{})

	entity := &domain.ReviewEntity{
		ID:      "prj-1",
		Kind:    domain.KindProject,
		Status:  domain.StatusLive,
		Version: 2,
	}
	entityRepo.On("GetByID", mock.Anything, "prj-1").Return(entity, nil)

	_, err := svc.Decide(context.Background(), "prj-1", workflow.Decision{
		Action:  domain.ActionApprove,
		ActorID: "admin1",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrIllegalTransition)
	entityRepo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_VersionConflictSurfaces(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	notifier := &mocks.MockNotifier{}
	svc := newReviewService(entityRepo, &mocks.MockScheduleRepository{}, &mocks.MockIdentityIssuer{}, notifier, &mocks.MockEscrowSettler{})

	entity := &domain.ReviewEntity{
		ID:      "prj-2",
		Kind:    domain.KindProject,
		Status:  domain.StatusNew,
		Version: 5,
	}
	entityRepo.On("GetByID", mock.Anything, "prj-2").Return(entity, nil)
	entityRepo.On("ApplyTransition", mock.Anything, mock.Anything, mock.Anything, 5).
		Return(customError.WrapVersionConflict("prj-2"))

	_, err := svc.Decide(context.Background(), "prj-2", workflow.Decision{
		Action:  domain.ActionApprove,
		ActorID: "admin1",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrVersionConflict)
	// No side effects after a failed write.
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateEntity(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newReviewService(entityRepo, &mocks.MockScheduleRepository{}, &mocks.MockIdentityIssuer{}, &mocks.MockNotifier{}, &mocks.MockEscrowSettler{})

	entityRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEntity) bool {
		return e.Kind == domain.KindBusiness && e.Status == domain.StatusNew && e.Version == 1
	})).Return(nil)

	entity, err := svc.CreateEntity(context.Background(), domain.KindBusiness, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, entity.ID)
	entityRepo.AssertExpectations(t)
}

func TestCreateEntity_RejectsSchemeKind(t *testing.T) {
	svc := newReviewService(&mocks.MockEntityRepository{}, &mocks.MockScheduleRepository{}, &mocks.MockIdentityIssuer{}, &mocks.MockNotifier{}, &mocks.MockEscrowSettler{})

	_, err := svc.CreateEntity(context.Background(), domain.KindScheme, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrInvalidRange)
}

func TestResubmit(t *testing.T) {
	entityRepo := &mocks.MockEntityRepository{}
	svc := newReviewService(entityRepo, &mocks.MockScheduleRepository{}, &mocks.MockIdentityIssuer{}, &mocks.MockNotifier{}, &mocks.MockEscrowSettler{})

	entity := &domain.ReviewEntity{
		ID:      "shr-1",
		Kind:    domain.KindShare,
		Status:  domain.StatusRecheck,
		Version: 2,
	}
	entityRepo.On("GetByID", mock.Anything, "shr-1").Return(entity, nil)
	entityRepo.On("ApplyTransition", mock.Anything, mock.Anything, mock.Anything, 2).Return(nil)

	updated, err := svc.Resubmit(context.Background(), "shr-1", "owner9")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
	assert.Equal(t, 3, updated.Version)
	entityRepo.AssertExpectations(t)
}
