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

type depositRepository struct {
	db *sqlx.DB
}

func NewDepositRepository(db *sqlx.DB) DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit, events []*domain.ScheduleEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deposit.CreatedAt = time.Now()

	depositQuery := `
		INSERT INTO deposits (id, scheme_id, investor_id, principal, start_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.ExecContext(ctx, depositQuery,
		deposit.ID,
		deposit.SchemeID,
		deposit.InvestorID,
		deposit.Principal,
		deposit.StartDate,
		deposit.Status,
		deposit.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertEvents(ctx, tx, events); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *depositRepository) GetByID(ctx context.Context, id string) (*domain.Deposit, error) {
	query := `
		SELECT id, scheme_id, investor_id, principal, start_date, status, created_at
		FROM deposits
		WHERE id = $1
	`

	var deposit domain.Deposit
	if err := r.db.GetContext(ctx, &deposit, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound(id)
		}
		return nil, err
	}

	return &deposit, nil
}

func (r *depositRepository) GetBySchemeID(ctx context.Context, schemeID string) ([]*domain.Deposit, error) {
	query := `
		SELECT id, scheme_id, investor_id, principal, start_date, status, created_at
		FROM deposits
		WHERE scheme_id = $1
		ORDER BY created_at
	`

	var deposits []*domain.Deposit
	if err := r.db.SelectContext(ctx, &deposits, query, schemeID); err != nil {
		return nil, err
	}

	return deposits, nil
}
