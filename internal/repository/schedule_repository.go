package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsawant/invest-engine/internal/domain"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const insertEventQuery = `
	INSERT INTO schedule_events
		(id, scheme_id, deposit_id, seq, event_type, due_date,
		 gross_amount, tax_amount, net_amount,
		 scheme_amount, main_amount, income_amount,
		 status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func insertEvents(ctx context.Context, tx *sqlx.Tx, events []*domain.ScheduleEvent) error {
	for _, e := range events {
		_, err := tx.ExecContext(ctx, insertEventQuery,
			e.ID,
			e.SchemeID,
			e.DepositID,
			e.Seq,
			e.Type,
			e.DueDate,
			e.GrossAmount,
			e.TaxAmount,
			e.NetAmount,
			e.SchemeAmount,
			e.MainAmount,
			e.IncomeAmount,
			e.Status,
			e.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *scheduleRepository) CreateEvents(ctx context.Context, events []*domain.ScheduleEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertEvents(ctx, tx, events); err != nil {
		return err
	}

	return tx.Commit()
}

const selectEventColumns = `
	SELECT id, scheme_id, deposit_id, seq, event_type, due_date,
	       gross_amount, tax_amount, net_amount,
	       scheme_amount, main_amount, income_amount,
	       status, created_at
	FROM schedule_events
`

func (r *scheduleRepository) GetByDepositID(ctx context.Context, depositID string) ([]*domain.ScheduleEvent, error) {
	query := selectEventColumns + `
		WHERE deposit_id = $1
		ORDER BY seq
	`

	var events []*domain.ScheduleEvent
	if err := r.db.SelectContext(ctx, &events, query, depositID); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *scheduleRepository) GetReferenceBySchemeID(ctx context.Context, schemeID string) ([]*domain.ScheduleEvent, error) {
	query := selectEventColumns + `
		WHERE scheme_id = $1 AND deposit_id IS NULL
		ORDER BY seq
	`

	var events []*domain.ScheduleEvent
	if err := r.db.SelectContext(ctx, &events, query, schemeID); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *scheduleRepository) GetDue(ctx context.Context, asOf time.Time, limit int) ([]*domain.ScheduleEvent, error) {
	// Reference schedules (deposit_id IS NULL) are advisory and never dispatched.
	query := selectEventColumns + `
		WHERE status = 'pending' AND deposit_id IS NOT NULL AND due_date <= $1
		ORDER BY due_date, seq
		LIMIT $2
	`

	var events []*domain.ScheduleEvent
	if err := r.db.SelectContext(ctx, &events, query, asOf, limit); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *scheduleRepository) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE schedule_events
		SET status = 'dispatched'
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
