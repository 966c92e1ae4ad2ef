package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType distinguishes periodic interest payouts from the maturity payout
type EventType string

const (
	EventInterest EventType = "INTEREST"
	EventMaturity EventType = "MATURITY"
)

const (
	EventStatusPending    = "pending"
	EventStatusDispatched = "dispatched"
)

// ScheduleEvent is one materialized transfer in a deposit's timeline. Events
// are a pure projection of the scheme's frozen terms plus a principal; the
// same inputs always reproduce the same amounts and dates.
type ScheduleEvent struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	SchemeID     string          `json:"scheme_id" db:"scheme_id"`
	DepositID    *string         `json:"deposit_id,omitempty" db:"deposit_id"`
	Seq          int             `json:"seq" db:"seq"`
	Type         EventType       `json:"type" db:"event_type"`
	DueDate      time.Time       `json:"due_date" db:"due_date"`
	GrossAmount  decimal.Decimal `json:"gross_amount" db:"gross_amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	NetAmount    decimal.Decimal `json:"net_amount" db:"net_amount"`
	SchemeAmount decimal.Decimal `json:"scheme_amount" db:"scheme_amount"`
	MainAmount   decimal.Decimal `json:"main_amount" db:"main_amount"`
	IncomeAmount decimal.Decimal `json:"income_amount" db:"income_amount"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// AmountFor returns the amount allocated to a bucket.
func (e *ScheduleEvent) AmountFor(b Bucket) decimal.Decimal {
	switch b {
	case BucketScheme:
		return e.SchemeAmount
	case BucketMain:
		return e.MainAmount
	case BucketIncome:
		return e.IncomeAmount
	}
	return decimal.Zero
}

// Allocation returns the positive bucket allocations in fixed bucket order.
func (e *ScheduleEvent) Allocation() map[Bucket]decimal.Decimal {
	alloc := make(map[Bucket]decimal.Decimal, 3)
	for _, b := range AllBuckets() {
		if amount := e.AmountFor(b); amount.IsPositive() {
			alloc[b] = amount
		}
	}
	return alloc
}

type ScheduleResponse struct {
	SchemeID  string           `json:"scheme_id"`
	DepositID string           `json:"deposit_id,omitempty"`
	Events    []*ScheduleEvent `json:"events"`
}
