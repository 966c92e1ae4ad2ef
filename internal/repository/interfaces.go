package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rsawant/invest-engine/internal/domain"
)

// EntityRepository defines persistence for reviewable entities
type EntityRepository interface {
	// Create inserts a new entity at its initial status with empty history
	Create(ctx context.Context, e *domain.ReviewEntity) error

	// GetByID loads an entity together with its ordered review history
	GetByID(ctx context.Context, id string) (*domain.ReviewEntity, error)

	// ApplyTransition writes a status change and its history record as one
	// transaction, guarded by the entity version read before deciding. A
	// concurrent update surfaces as a version-conflict error.
	ApplyTransition(ctx context.Context, e *domain.ReviewEntity, record *domain.ReviewRecord, fromVersion int) error
}

// DepositRepository defines persistence for scheme deposits
type DepositRepository interface {
	// Create inserts a deposit and its schedule events in one transaction
	Create(ctx context.Context, deposit *domain.Deposit, events []*domain.ScheduleEvent) error

	// GetByID retrieves a deposit
	GetByID(ctx context.Context, id string) (*domain.Deposit, error)

	// GetBySchemeID retrieves all deposits into a scheme
	GetBySchemeID(ctx context.Context, schemeID string) ([]*domain.Deposit, error)
}

// ScheduleRepository defines persistence for materialized schedule events
type ScheduleRepository interface {
	// CreateEvents inserts schedule events
	CreateEvents(ctx context.Context, events []*domain.ScheduleEvent) error

	// GetByDepositID retrieves a deposit's schedule ordered by sequence
	GetByDepositID(ctx context.Context, depositID string) ([]*domain.ScheduleEvent, error)

	// GetReferenceBySchemeID retrieves the reference schedule materialized at
	// approval time (events with no deposit)
	GetReferenceBySchemeID(ctx context.Context, schemeID string) ([]*domain.ScheduleEvent, error)

	// GetDue retrieves pending deposit events due on or before asOf
	GetDue(ctx context.Context, asOf time.Time, limit int) ([]*domain.ScheduleEvent, error)

	// MarkDispatched flips an event to dispatched
	MarkDispatched(ctx context.Context, id uuid.UUID) error
}
