package scheme

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rsawant/invest-engine/internal/domain"
	customError "github.com/rsawant/invest-engine/pkg/errors"
)

// DivisionTolerance is the only approximate comparison in the engine: the
// division sums may deviate from 100 by at most this much.
var DivisionTolerance = decimal.NewFromFloat(0.1)

var oneHundred = decimal.NewFromInt(100)

// Validate gates a scheme draft into the approval pipeline. It runs once, at
// creation; a scheme's numeric terms have no update path afterwards. On
// success the returned scheme carries a generated ID and is unpublished and
// inactive until approval.
func Validate(req *domain.CreateSchemeRequest) (*domain.FDScheme, error) {
	if req.MinAmount.IsNegative() {
		return nil, customError.WrapInvalidRange("min_amount", "must not be negative")
	}
	if req.MaxAmount != nil && req.MaxAmount.LessThan(req.MinAmount) {
		return nil, customError.WrapInvalidRange("max_amount", "must not be below min_amount")
	}
	if req.InterestPercent.IsNegative() {
		return nil, customError.WrapInvalidRange("interest_percent", "must not be negative")
	}
	if req.TaxDeductionPercent.IsNegative() {
		return nil, customError.WrapInvalidRange("tax_deduction_percent", "must not be negative")
	}
	if req.InterestCalculationDays <= 0 {
		return nil, customError.WrapInvalidRange("interest_calculation_days", "must be greater than zero")
	}
	if req.MaturityDays <= 0 {
		return nil, customError.WrapInvalidRange("maturity_days", "must be greater than zero")
	}
	if req.TransferScheduleDays <= 0 {
		return nil, customError.WrapInvalidRange("transfer_schedule_days", "must be greater than zero")
	}
	if req.TransferScheduleDays > req.InterestCalculationDays {
		return nil, customError.WrapInvalidRange("transfer_schedule_days", "must not exceed interest_calculation_days")
	}

	for _, share := range []decimal.Decimal{
		req.InterestDivision.Scheme,
		req.InterestDivision.MainWallet,
		req.InterestDivision.IncomeWallet,
	} {
		if share.IsNegative() {
			return nil, customError.WrapInvalidRange("interest_division", "percentages must not be negative")
		}
	}
	if sum := req.InterestDivision.Sum(); sum.Sub(oneHundred).Abs().GreaterThan(DivisionTolerance) {
		return nil, customError.WrapDivisionMismatch("interest_division", sum.String())
	}

	if req.MaturityTransferDivision.MainWallet.IsNegative() || req.MaturityTransferDivision.IncomeWallet.IsNegative() {
		return nil, customError.WrapInvalidRange("maturity_transfer_division", "percentages must not be negative")
	}
	if sum := req.MaturityTransferDivision.Sum(); sum.Sub(oneHundred).Abs().GreaterThan(DivisionTolerance) {
		return nil, customError.WrapDivisionMismatch("maturity_transfer_division", sum.String())
	}

	transferType, err := normalizeTransferType(req.InterestTransferType)
	if err != nil {
		return nil, err
	}

	return &domain.FDScheme{
		SchemeID:                 newSchemeID(),
		Name:                     req.Name,
		MinAmount:                req.MinAmount,
		MaxAmount:                req.MaxAmount,
		InterestPercent:          req.InterestPercent,
		InterestCalculationDays:  req.InterestCalculationDays,
		TransferScheduleDays:     req.TransferScheduleDays,
		InterestTransferType:     transferType,
		InterestDivision:         req.InterestDivision,
		MaturityDays:             req.MaturityDays,
		MaturityTransferDivision: req.MaturityTransferDivision,
		TaxDeductionPercent:      req.TaxDeductionPercent,
		IsPublished:              false,
		IsActive:                 false,
	}, nil
}

// normalizeTransferType dedupes the bucket set and fixes its order.
func normalizeTransferType(buckets []domain.Bucket) ([]domain.Bucket, error) {
	if len(buckets) == 0 {
		return nil, customError.WrapEmptyTransferType()
	}

	seen := make(map[domain.Bucket]bool, len(buckets))
	for _, b := range buckets {
		switch b {
		case domain.BucketScheme, domain.BucketMain, domain.BucketIncome:
			seen[b] = true
		default:
			return nil, customError.WrapInvalidRange("interest_transfer_type", "unknown bucket "+string(b))
		}
	}

	var normalized []domain.Bucket
	for _, b := range domain.AllBuckets() {
		if seen[b] {
			normalized = append(normalized, b)
		}
	}
	return normalized, nil
}

func newSchemeID() string {
	return "FDS-" + strings.ToUpper(uuid.New().String()[:8])
}
