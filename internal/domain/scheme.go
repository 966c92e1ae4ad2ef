package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Bucket is a named wallet destination for interest and maturity transfers
type Bucket string

const (
	BucketScheme Bucket = "SCHEME"
	BucketMain   Bucket = "MAIN"
	BucketIncome Bucket = "INCOME"
)

// AllBuckets returns the buckets in their fixed allocation order.
func AllBuckets() []Bucket {
	return []Bucket{BucketScheme, BucketMain, BucketIncome}
}

// InterestDivision is the percentage split of each interest payout
type InterestDivision struct {
	Scheme       decimal.Decimal `json:"scheme"`
	MainWallet   decimal.Decimal `json:"main_wallet"`
	IncomeWallet decimal.Decimal `json:"income_wallet"`
}

func (d InterestDivision) Sum() decimal.Decimal {
	return d.Scheme.Add(d.MainWallet).Add(d.IncomeWallet)
}

// Share returns the percentage assigned to a bucket.
func (d InterestDivision) Share(b Bucket) decimal.Decimal {
	switch b {
	case BucketScheme:
		return d.Scheme
	case BucketMain:
		return d.MainWallet
	case BucketIncome:
		return d.IncomeWallet
	}
	return decimal.Zero
}

// MaturityDivision is the percentage split of the principal repayment
type MaturityDivision struct {
	MainWallet   decimal.Decimal `json:"main_wallet"`
	IncomeWallet decimal.Decimal `json:"income_wallet"`
}

func (d MaturityDivision) Sum() decimal.Decimal {
	return d.MainWallet.Add(d.IncomeWallet)
}

// FDScheme is a fixed-deposit product definition. Numeric terms are frozen at
// creation; only the publish/active flags change afterwards, and only as
// approval side effects.
type FDScheme struct {
	SchemeID                 string           `json:"scheme_id"`
	Name                     string           `json:"name"`
	MinAmount                decimal.Decimal  `json:"min_amount"`
	MaxAmount                *decimal.Decimal `json:"max_amount,omitempty"`
	InterestPercent          decimal.Decimal  `json:"interest_percent"`
	InterestCalculationDays  int              `json:"interest_calculation_days"`
	TransferScheduleDays     int              `json:"transfer_schedule_days"`
	InterestTransferType     []Bucket         `json:"interest_transfer_type"`
	InterestDivision         InterestDivision `json:"interest_division"`
	MaturityDays             int              `json:"maturity_days"`
	MaturityTransferDivision MaturityDivision `json:"maturity_transfer_division"`
	TaxDeductionPercent      decimal.Decimal  `json:"tax_deduction_percent"`
	IsPublished              bool             `json:"is_published"`
	IsActive                 bool             `json:"is_active"`
}

// TransfersTo reports whether the bucket is enabled for interest payouts.
func (s *FDScheme) TransfersTo(b Bucket) bool {
	for _, t := range s.InterestTransferType {
		if t == b {
			return true
		}
	}
	return false
}

// IsOpen reports whether the scheme accepts deposits.
func (s *FDScheme) IsOpen() bool {
	return s.IsPublished && s.IsActive
}

// AcceptsPrincipal checks a deposit amount against the scheme bounds.
func (s *FDScheme) AcceptsPrincipal(principal decimal.Decimal) bool {
	if principal.LessThan(s.MinAmount) {
		return false
	}
	if s.MaxAmount != nil && principal.GreaterThan(*s.MaxAmount) {
		return false
	}
	return true
}

// SchemeFromEntity decodes the FD scheme document out of a review entity.
func SchemeFromEntity(e *ReviewEntity) (*FDScheme, error) {
	var scheme FDScheme
	if err := json.Unmarshal(e.Payload, &scheme); err != nil {
		return nil, err
	}
	return &scheme, nil
}

// DTOs for requests and responses

type CreateSchemeRequest struct {
	Name                     string           `json:"name" validate:"required"`
	MinAmount                decimal.Decimal  `json:"min_amount"`
	MaxAmount                *decimal.Decimal `json:"max_amount,omitempty"`
	InterestPercent          decimal.Decimal  `json:"interest_percent"`
	InterestCalculationDays  int              `json:"interest_calculation_days" validate:"required"`
	TransferScheduleDays     int              `json:"transfer_schedule_days" validate:"required"`
	InterestTransferType     []Bucket         `json:"interest_transfer_type"`
	InterestDivision         InterestDivision `json:"interest_division"`
	MaturityDays             int              `json:"maturity_days" validate:"required"`
	MaturityTransferDivision MaturityDivision `json:"maturity_transfer_division"`
	TaxDeductionPercent      decimal.Decimal  `json:"tax_deduction_percent"`
}

type SchemeResponse struct {
	Entity *ReviewEntity `json:"entity"`
	Scheme *FDScheme     `json:"scheme"`
}
