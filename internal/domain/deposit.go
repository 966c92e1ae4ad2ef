package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DepositStatusActive  = "active"
	DepositStatusMatured = "matured"
)

// Deposit is a customer's fixed deposit into an approved scheme
type Deposit struct {
	ID         string          `json:"id" db:"id"`
	SchemeID   string          `json:"scheme_id" db:"scheme_id"`
	InvestorID string          `json:"investor_id" db:"investor_id"`
	Principal  decimal.Decimal `json:"principal" db:"principal"`
	StartDate  time.Time       `json:"start_date" db:"start_date"`
	Status     string          `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type CreateDepositRequest struct {
	InvestorID string          `json:"investor_id" validate:"required"`
	Principal  decimal.Decimal `json:"principal"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
}

type CreateDepositResponse struct {
	Deposit  *Deposit         `json:"deposit"`
	Schedule []*ScheduleEvent `json:"schedule"`
}

// ProjectionResponse is the read-only what-if preview for a principal amount
type ProjectionResponse struct {
	SchemeID      string           `json:"scheme_id"`
	Principal     decimal.Decimal  `json:"principal"`
	TotalInterest decimal.Decimal  `json:"total_interest"`
	TotalTax      decimal.Decimal  `json:"total_tax"`
	TotalPayout   decimal.Decimal  `json:"total_payout"`
	Events        []*ScheduleEvent `json:"events"`
}
