package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/domain"
	"github.com/rsawant/invest-engine/internal/repository"
	"github.com/rsawant/invest-engine/internal/scheme"
	customError "github.com/rsawant/invest-engine/pkg/errors"
)

// SchemeService manages FD scheme creation, deposits and projections. Scheme
// approval itself goes through ReviewService like every other entity.
type SchemeService struct {
	Entities  repository.EntityRepository
	Deposits  repository.DepositRepository
	Schedules repository.ScheduleRepository
	Projector *scheme.Projector

	Log *logrus.Logger
}

func NewSchemeService(
	entities repository.EntityRepository,
	deposits repository.DepositRepository,
	schedules repository.ScheduleRepository,
	projector *scheme.Projector,
	log *logrus.Logger,
) *SchemeService {
	return &SchemeService{
		Entities:  entities,
		Deposits:  deposits,
		Schedules: schedules,
		Projector: projector,
		Log:       log,
	}
}

// CreateScheme validates a draft and enters it into the approval pipeline at
// PENDING. The numeric terms are frozen from this point on.
func (s *SchemeService) CreateScheme(ctx context.Context, req *domain.CreateSchemeRequest) (*domain.SchemeResponse, error) {
	sch, err := scheme.Validate(req)
	if err != nil {
		return nil, err
	}

	entity := &domain.ReviewEntity{
		ID:      sch.SchemeID,
		Kind:    domain.KindScheme,
		Status:  domain.StatusPending,
		Version: 1,
	}
	if err := entity.SetPayload(sch); err != nil {
		return nil, err
	}

	if err := s.Entities.Create(ctx, entity); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.Log.WithFields(logrus.Fields{
		"scheme_id": sch.SchemeID,
		"name":      sch.Name,
	}).Info("scheme created, pending approval")

	return &domain.SchemeResponse{Entity: entity, Scheme: sch}, nil
}

// GetScheme loads a scheme with its review entity.
func (s *SchemeService) GetScheme(ctx context.Context, schemeID string) (*domain.SchemeResponse, error) {
	entity, err := s.Entities.GetByID(ctx, schemeID)
	if err != nil {
		return nil, err
	}
	if entity.Kind != domain.KindScheme {
		return nil, customError.WrapNotFound(schemeID)
	}

	sch, err := domain.SchemeFromEntity(entity)
	if err != nil {
		return nil, err
	}

	return &domain.SchemeResponse{Entity: entity, Scheme: sch}, nil
}

// RegisterDeposit records a customer deposit into an approved, open scheme
// and materializes its schedule in the same transaction as the deposit row.
func (s *SchemeService) RegisterDeposit(ctx context.Context, schemeID string, req *domain.CreateDepositRequest) (*domain.CreateDepositResponse, error) {
	resp, err := s.GetScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	if resp.Entity.Status != domain.StatusApproved || !resp.Scheme.IsOpen() {
		return nil, customError.WrapSchemeNotOpen(schemeID)
	}

	if !resp.Scheme.AcceptsPrincipal(req.Principal) {
		return nil, customError.WrapInvalidRange("principal",
			"must be within the scheme's deposit bounds")
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	start = start.Truncate(24 * time.Hour)

	deposit := &domain.Deposit{
		ID:         newDepositID(),
		SchemeID:   schemeID,
		InvestorID: req.InvestorID,
		Principal:  req.Principal,
		StartDate:  start,
		Status:     domain.DepositStatusActive,
	}

	events := scheme.BuildSchedule(resp.Scheme, req.Principal, start)
	now := time.Now()
	for _, e := range events {
		e.ID = uuid.New()
		e.DepositID = &deposit.ID
		e.Status = domain.EventStatusPending
		e.CreatedAt = now
	}

	if err := s.Deposits.Create(ctx, deposit, events); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.Log.WithFields(logrus.Fields{
		"deposit_id": deposit.ID,
		"scheme_id":  schemeID,
		"principal":  req.Principal.String(),
		"events":     len(events),
	}).Info("deposit registered with materialized schedule")

	return &domain.CreateDepositResponse{Deposit: deposit, Schedule: events}, nil
}

// Project previews returns for an arbitrary principal without persisting
// anything. Previews work for schemes in any approval status.
func (s *SchemeService) Project(ctx context.Context, schemeID string, principal decimal.Decimal) (*domain.ProjectionResponse, error) {
	resp, err := s.GetScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	if !principal.IsPositive() {
		return nil, customError.WrapInvalidRange("principal", "must be greater than zero")
	}

	return s.Projector.Project(ctx, resp.Scheme, principal, time.Now())
}

// GetDepositSchedule returns a deposit's materialized timeline.
func (s *SchemeService) GetDepositSchedule(ctx context.Context, depositID string) (*domain.ScheduleResponse, error) {
	deposit, err := s.Deposits.GetByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	events, err := s.Schedules.GetByDepositID(ctx, depositID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.ScheduleResponse{
		SchemeID:  deposit.SchemeID,
		DepositID: deposit.ID,
		Events:    events,
	}, nil
}

// GetReferenceSchedule returns the MinAmount timeline materialized at
// approval time.
func (s *SchemeService) GetReferenceSchedule(ctx context.Context, schemeID string) (*domain.ScheduleResponse, error) {
	if _, err := s.GetScheme(ctx, schemeID); err != nil {
		return nil, err
	}

	events, err := s.Schedules.GetReferenceBySchemeID(ctx, schemeID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.ScheduleResponse{SchemeID: schemeID, Events: events}, nil
}

func newDepositID() string {
	return "FDD-" + strings.ToUpper(uuid.New().String()[:8])
}
