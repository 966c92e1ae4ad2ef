package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rsawant/invest-engine/internal/domain"
	customError "github.com/rsawant/invest-engine/pkg/errors"
)

type entityRepository struct {
	db *sqlx.DB
}

func NewEntityRepository(db *sqlx.DB) EntityRepository {
	return &entityRepository{db: db}
}

func (r *entityRepository) Create(ctx context.Context, e *domain.ReviewEntity) error {
	query := `
		INSERT INTO review_entities (id, kind, status, version, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Kind,
		e.Status,
		e.Version,
		e.Payload,
		e.CreatedAt,
		e.UpdatedAt,
	)

	return err
}

func (r *entityRepository) GetByID(ctx context.Context, id string) (*domain.ReviewEntity, error) {
	query := `
		SELECT id, kind, status, version, payload, created_at, updated_at
		FROM review_entities
		WHERE id = $1
	`

	var entity domain.ReviewEntity
	if err := r.db.GetContext(ctx, &entity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound(id)
		}
		return nil, err
	}

	historyQuery := `
		SELECT id, entity_id, seq, from_status, to_status, actor_id, comment, created_at
		FROM review_history
		WHERE entity_id = $1
		ORDER BY seq
	`

	if err := r.db.SelectContext(ctx, &entity.History, historyQuery, id); err != nil {
		return nil, err
	}

	return &entity, nil
}

// ApplyTransition is the single write path for status changes. The UPDATE is
// fenced on the version read before the decision, so two concurrent decisions
// on one entity cannot both observe the pre-transition status.
func (r *entityRepository) ApplyTransition(ctx context.Context, e *domain.ReviewEntity, record *domain.ReviewRecord, fromVersion int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE review_entities
		SET status = $2, version = $3, payload = $4, updated_at = $5
		WHERE id = $1 AND version = $6
	`

	result, err := tx.ExecContext(ctx, updateQuery,
		e.ID,
		e.Status,
		e.Version,
		e.Payload,
		e.UpdatedAt,
		fromVersion,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.WrapVersionConflict(e.ID)
	}

	historyQuery := `
		INSERT INTO review_history (id, entity_id, seq, from_status, to_status, actor_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.ExecContext(ctx, historyQuery,
		record.ID,
		record.EntityID,
		record.Seq,
		record.FromStatus,
		record.ToStatus,
		record.ActorID,
		record.Comment,
		record.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
