package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/domain"
	"github.com/rsawant/invest-engine/internal/repository"
	"github.com/rsawant/invest-engine/internal/scheme"
	"github.com/rsawant/invest-engine/internal/workflow"
	customError "github.com/rsawant/invest-engine/pkg/errors"

	"github.com/rsawant/invest-engine/internal/collaborator"
)

// ReviewService runs reviewer decisions through the approval state machine
// and owns the persist-then-side-effect ordering.
type ReviewService struct {
	Entities  repository.EntityRepository
	Schedules repository.ScheduleRepository
	Identity  collaborator.IdentityIssuer
	Notifier  collaborator.Notifier
	Escrow    collaborator.EscrowSettler

	Log *logrus.Logger

	// ReferenceSchedules materializes a MinAmount timeline on scheme approval.
	ReferenceSchedules bool
}

func NewReviewService(
	entities repository.EntityRepository,
	schedules repository.ScheduleRepository,
	identity collaborator.IdentityIssuer,
	notifier collaborator.Notifier,
	escrow collaborator.EscrowSettler,
	log *logrus.Logger,
	referenceSchedules bool,
) *ReviewService {
	return &ReviewService{
		Entities:           entities,
		Schedules:          schedules,
		Identity:           identity,
		Notifier:           notifier,
		Escrow:             escrow,
		Log:                log,
		ReferenceSchedules: referenceSchedules,
	}
}

// CreateEntity registers a reviewable entity at its kind's initial status.
// FD schemes enter through SchemeService.CreateScheme instead, which runs the
// scheme validator first.
func (s *ReviewService) CreateEntity(ctx context.Context, kind domain.EntityKind, payload json.RawMessage) (*domain.ReviewEntity, error) {
	if kind == domain.KindScheme {
		return nil, customError.WrapInvalidRange("kind", "fd_scheme entities are created through the scheme endpoint")
	}

	if payload == nil {
		payload = json.RawMessage("{}")
	}

	entity := &domain.ReviewEntity{
		ID:      uuid.New().String(),
		Kind:    kind,
		Status:  domain.InitialStatus(kind),
		Version: 1,
		Payload: payload,
	}

	if err := s.Entities.Create(ctx, entity); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return entity, nil
}

// Get loads an entity with its review history.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.ReviewEntity, error) {
	return s.Entities.GetByID(ctx, id)
}

// Decide applies a reviewer decision. The status change and history append
// commit together; side effects run strictly afterwards, and a side-effect
// failure is logged without touching the committed transition.
func (s *ReviewService) Decide(ctx context.Context, entityID string, d workflow.Decision) (*domain.ReviewEntity, error) {
	entity, err := s.Entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	fromVersion := entity.Version

	outcome, err := workflow.Decide(entity, d, time.Now())
	if err != nil {
		return nil, err
	}

	// Scheme publish flags change inside the same transition write so the
	// flags can never disagree with the approval status.
	switch outcome.Effect {
	case workflow.EffectPublishScheme:
		if err := s.setSchemeFlags(entity, true); err != nil {
			return nil, err
		}
	case workflow.EffectUnpublishScheme:
		if err := s.setSchemeFlags(entity, false); err != nil {
			return nil, err
		}
	}

	entity.Version = fromVersion + 1
	if err := s.Entities.ApplyTransition(ctx, entity, &outcome.Record, fromVersion); err != nil {
		return nil, err
	}

	s.applyEffects(ctx, entity, outcome)

	return entity, nil
}

// Resubmit is the owner-side trigger returning a rechecked entity to review.
func (s *ReviewService) Resubmit(ctx context.Context, entityID, actorID string) (*domain.ReviewEntity, error) {
	entity, err := s.Entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	fromVersion := entity.Version

	record, err := workflow.Resubmit(entity, actorID, time.Now())
	if err != nil {
		return nil, err
	}

	entity.Version = fromVersion + 1
	if err := s.Entities.ApplyTransition(ctx, entity, &record, fromVersion); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *ReviewService) setSchemeFlags(entity *domain.ReviewEntity, published bool) error {
	sch, err := domain.SchemeFromEntity(entity)
	if err != nil {
		return err
	}
	sch.IsPublished = published
	sch.IsActive = published
	return entity.SetPayload(sch)
}

// applyEffects runs post-commit side effects. Errors are logged only; the
// transition is already durable and must not be rolled back.
func (s *ReviewService) applyEffects(ctx context.Context, entity *domain.ReviewEntity, outcome workflow.Outcome) {
	log := s.Log.WithFields(logrus.Fields{
		"entity_id": entity.ID,
		"kind":      string(entity.Kind),
		"status":    string(entity.Status),
	})

	switch outcome.Effect {
	case workflow.EffectNone:
		return

	case workflow.EffectActivateBusiness:
		userID, err := s.Identity.IssueCredentials(ctx, entity)
		if err != nil {
			log.WithError(err).Error("credential issuing failed after activation")
		} else {
			log.WithField("user_id", userID).Info("business activated")
		}
		s.notify(ctx, entity, outcome, log)

	case workflow.EffectCloseProject:
		if err := s.Escrow.Settle(ctx, entity.ID); err != nil {
			log.WithError(err).Error("escrow settlement failed after project close")
		}
		s.notify(ctx, entity, outcome, log)

	case workflow.EffectPublishScheme:
		if s.ReferenceSchedules {
			s.materializeReference(ctx, entity, log)
		}
		s.notify(ctx, entity, outcome, log)

	default:
		s.notify(ctx, entity, outcome, log)
	}
}

func (s *ReviewService) notify(ctx context.Context, entity *domain.ReviewEntity, outcome workflow.Outcome, log *logrus.Entry) {
	err := s.Notifier.Notify(ctx, entity.ID, "review_decision", map[string]interface{}{
		"kind":    string(entity.Kind),
		"status":  string(entity.Status),
		"comment": outcome.Record.Comment,
	})
	if err != nil {
		log.WithError(err).Error("decision notification failed")
	}
}

// materializeReference persists the scheme's MinAmount timeline so the
// product page can show the payout cadence before any deposit exists.
func (s *ReviewService) materializeReference(ctx context.Context, entity *domain.ReviewEntity, log *logrus.Entry) {
	sch, err := domain.SchemeFromEntity(entity)
	if err != nil {
		log.WithError(err).Error("scheme payload decode failed during materialization")
		return
	}

	events := scheme.BuildSchedule(sch, sch.MinAmount, time.Now())
	now := time.Now()
	for _, e := range events {
		e.ID = uuid.New()
		e.Status = domain.EventStatusPending
		e.CreatedAt = now
	}

	if err := s.Schedules.CreateEvents(ctx, events); err != nil {
		log.WithError(err).Error("reference schedule materialization failed")
		return
	}

	log.WithField("events", len(events)).Info("reference schedule materialized")
}
