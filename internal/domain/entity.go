package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	customError "github.com/rsawant/invest-engine/pkg/errors"
)

// EntityKind discriminates the reviewable entity types
type EntityKind string

const (
	KindBusiness    EntityKind = "business"
	KindProject     EntityKind = "project"
	KindShare       EntityKind = "share"
	KindLoan        EntityKind = "loan"
	KindPartnership EntityKind = "partnership"
	KindScheme      EntityKind = "fd_scheme"
)

// Status values across all entity kinds. Each kind uses its own subset,
// enforced by the workflow transition tables.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusRecheck  Status = "RECHECK"
	StatusRejected Status = "REJECTED"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusResubmit Status = "RESUBMIT"
	StatusApproved Status = "APPROVED"
	StatusLive     Status = "LIVE"
	StatusClosed   Status = "CLOSED"
	StatusPending  Status = "PENDING"
)

// Action is a reviewer decision
type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionRecheck    Action = "recheck"
	ActionDeactivate Action = "deactivate"
	ActionReactivate Action = "reactivate"
	ActionLive       Action = "live"
	ActionClose      Action = "close"
)

// ReviewRecord is one append-only entry in an entity's review history
type ReviewRecord struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Seq        int       `json:"seq" db:"seq"`
	FromStatus Status    `json:"from_status" db:"from_status"`
	ToStatus   Status    `json:"to_status" db:"to_status"`
	ActorID    string    `json:"actor_id" db:"actor_id"`
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ReviewEntity is any entity governed by the approval workflow. Payload holds
// the kind-specific document; the workflow never looks inside it.
type ReviewEntity struct {
	ID        string          `json:"id" db:"id"`
	Kind      EntityKind      `json:"kind" db:"kind"`
	Status    Status          `json:"status" db:"status"`
	Version   int             `json:"version" db:"version"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	History   []ReviewRecord  `json:"history" db:"-"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CheckConsistent verifies the status matches the last history record.
// A mismatch means the status/history write was torn and the entity must not
// be processed further.
func (e *ReviewEntity) CheckConsistent() error {
	if len(e.History) == 0 {
		return nil
	}
	last := e.History[len(e.History)-1]
	if last.ToStatus != e.Status {
		return customError.WrapCorruptState(e.ID)
	}
	return nil
}

// SetPayload replaces the opaque payload with the JSON encoding of v
func (e *ReviewEntity) SetPayload(v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e.Payload = raw
	return nil
}

// InitialStatus returns the status a freshly submitted entity of the given
// kind starts in.
func InitialStatus(kind EntityKind) Status {
	switch kind {
	case KindBusiness, KindProject:
		return StatusNew
	default:
		return StatusPending
	}
}

// ResubmitTarget returns the status an entity in RECHECK returns to when its
// owner resubmits it.
func ResubmitTarget(kind EntityKind) Status {
	switch kind {
	case KindBusiness:
		return StatusNew
	case KindProject:
		return StatusResubmit
	default:
		return StatusPending
	}
}

// DTOs for requests and responses

type CreateEntityRequest struct {
	Kind    string          `json:"kind" validate:"required,oneof=business project share loan partnership"`
	Payload json.RawMessage `json:"payload"`
}

type DecisionRequest struct {
	Action    string                             `json:"action" validate:"required"`
	ActorID   string                             `json:"actor_id" validate:"required"`
	Comment   string                             `json:"comment"`
	Checklist map[ChecklistSection]ChecklistItem `json:"checklist,omitempty"`
}

type ResubmitRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
}
