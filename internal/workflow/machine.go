package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsawant/invest-engine/internal/domain"
	customError "github.com/rsawant/invest-engine/pkg/errors"
)

// Decision is a reviewer's submitted action against an entity
type Decision struct {
	Action    domain.Action
	ActorID   string
	Comment   string
	Checklist *domain.VerificationChecklist
}

// Outcome reports the applied transition and the side effect the caller must
// run after the write is durable.
type Outcome struct {
	Effect Effect
	Record domain.ReviewRecord
}

// Decide validates the decision against the entity's state graph and, on
// success, mutates the entity in memory: status is updated and one history
// record is appended. The caller persists both in a single transaction and
// only then fires the returned side effect. Re-invoking the same action after
// it succeeded fails with an illegal-transition error because the entity has
// moved on.
func Decide(e *domain.ReviewEntity, d Decision, now time.Time) (Outcome, error) {
	if err := e.CheckConsistent(); err != nil {
		return Outcome{}, err
	}

	t, ok := lookup(e.Kind, e.Status, d.Action)
	if !ok {
		return Outcome{}, customError.WrapIllegalTransition(string(e.Kind), string(e.Status), string(d.Action))
	}

	comment := strings.TrimSpace(d.Comment)
	if comment == "" && d.Checklist != nil {
		// Business recheck/reject carries the checklist section comments.
		comment = d.Checklist.JoinedComments()
	}
	if t.RequireComment && comment == "" {
		return Outcome{}, customError.WrapMissingComment(string(d.Action))
	}

	if t.RequireChecklist {
		if d.Checklist == nil || !d.Checklist.AllVerified() {
			unverified := domain.ChecklistSections()
			if d.Checklist != nil {
				unverified = d.Checklist.Unverified()
			}
			missing := make([]string, 0, len(unverified))
			for _, s := range unverified {
				missing = append(missing, string(s))
			}
			return Outcome{}, customError.WrapIncompleteVerification(missing)
		}
	}

	record := domain.ReviewRecord{
		ID:         uuid.New(),
		EntityID:   e.ID,
		Seq:        len(e.History) + 1,
		FromStatus: e.Status,
		ToStatus:   t.To,
		ActorID:    d.ActorID,
		Comment:    comment,
		CreatedAt:  now,
	}

	e.Status = t.To
	e.History = append(e.History, record)
	e.UpdatedAt = now

	return Outcome{Effect: t.Effect, Record: record}, nil
}

// Resubmit moves an entity its owner has amended from RECHECK back to the
// decidable status for its kind. It is an owner-side trigger, not a reviewer
// decision, so it bypasses the decision graph but still appends history.
func Resubmit(e *domain.ReviewEntity, actorID string, now time.Time) (domain.ReviewRecord, error) {
	if err := e.CheckConsistent(); err != nil {
		return domain.ReviewRecord{}, err
	}
	if e.Status != domain.StatusRecheck {
		return domain.ReviewRecord{}, customError.WrapIllegalTransition(string(e.Kind), string(e.Status), "resubmit")
	}

	record := domain.ReviewRecord{
		ID:         uuid.New(),
		EntityID:   e.ID,
		Seq:        len(e.History) + 1,
		FromStatus: e.Status,
		ToStatus:   domain.ResubmitTarget(e.Kind),
		ActorID:    actorID,
		Comment:    "resubmitted for review",
		CreatedAt:  now,
	}

	e.Status = record.ToStatus
	e.History = append(e.History, record)
	e.UpdatedAt = now

	return record, nil
}
