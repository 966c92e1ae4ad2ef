package scheme

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsawant/invest-engine/internal/domain"
	customError "github.com/rsawant/invest-engine/pkg/errors"
)

func validDraft() *domain.CreateSchemeRequest {
	return &domain.CreateSchemeRequest{
		Name:                    "Quarterly Saver",
		MinAmount:               decimal.NewFromInt(1000),
		InterestPercent:         decimal.NewFromInt(7),
		InterestCalculationDays: 90,
		TransferScheduleDays:    90,
		InterestTransferType:    []domain.Bucket{domain.BucketMain, domain.BucketIncome},
		InterestDivision: domain.InterestDivision{
			Scheme:       decimal.NewFromInt(0),
			MainWallet:   decimal.NewFromInt(60),
			IncomeWallet: decimal.NewFromInt(40),
		},
		MaturityDays: 365,
		MaturityTransferDivision: domain.MaturityDivision{
			MainWallet:   decimal.NewFromInt(100),
			IncomeWallet: decimal.NewFromInt(0),
		},
		TaxDeductionPercent: decimal.NewFromInt(10),
	}
}

func TestValidate_Success(t *testing.T) {
	scheme, err := Validate(validDraft())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(scheme.SchemeID, "FDS-"))
	assert.Len(t, scheme.SchemeID, 12)
	assert.False(t, scheme.IsPublished)
	assert.False(t, scheme.IsActive)
}

func TestValidate_DivisionMismatch(t *testing.T) {
	t.Run("interest division summing to 99 fails", func(t *testing.T) {
		draft := validDraft()
		draft.InterestDivision = domain.InterestDivision{
			Scheme:       decimal.NewFromInt(40),
			MainWallet:   decimal.NewFromInt(30),
			IncomeWallet: decimal.NewFromInt(29),
		}

		_, err := Validate(draft)

		require.Error(t, err)
		assert.ErrorIs(t, err, customError.ErrDivisionMismatch)
		assert.Contains(t, err.Error(), "99")
	})

	t.Run("sum within 0.1 tolerance passes", func(t *testing.T) {
		draft := validDraft()
		draft.InterestDivision = domain.InterestDivision{
			Scheme:       decimal.NewFromFloat(33.35),
			MainWallet:   decimal.NewFromFloat(33.35),
			IncomeWallet: decimal.NewFromFloat(33.35),
		}

		_, err := Validate(draft)
		assert.NoError(t, err)
	})

	t.Run("sum just past tolerance fails", func(t *testing.T) {
		draft := validDraft()
		draft.InterestDivision = domain.InterestDivision{
			MainWallet:   decimal.NewFromFloat(60),
			IncomeWallet: decimal.NewFromFloat(40.2),
		}

		_, err := Validate(draft)
		assert.ErrorIs(t, err, customError.ErrDivisionMismatch)
	})

	t.Run("maturity division is checked too", func(t *testing.T) {
		draft := validDraft()
		draft.MaturityTransferDivision = domain.MaturityDivision{
			MainWallet:   decimal.NewFromInt(50),
			IncomeWallet: decimal.NewFromInt(40),
		}

		_, err := Validate(draft)
		assert.ErrorIs(t, err, customError.ErrDivisionMismatch)
	})
}

func TestValidate_InvalidRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateSchemeRequest)
	}{
		{"negative min amount", func(d *domain.CreateSchemeRequest) {
			d.MinAmount = decimal.NewFromInt(-1)
		}},
		{"max below min", func(d *domain.CreateSchemeRequest) {
			max := decimal.NewFromInt(500)
			d.MaxAmount = &max
		}},
		{"negative interest percent", func(d *domain.CreateSchemeRequest) {
			d.InterestPercent = decimal.NewFromInt(-5)
		}},
		{"negative tax percent", func(d *domain.CreateSchemeRequest) {
			d.TaxDeductionPercent = decimal.NewFromInt(-1)
		}},
		{"zero calculation days", func(d *domain.CreateSchemeRequest) {
			d.InterestCalculationDays = 0
		}},
		{"zero maturity days", func(d *domain.CreateSchemeRequest) {
			d.MaturityDays = 0
		}},
		{"transfer day past period end", func(d *domain.CreateSchemeRequest) {
			d.TransferScheduleDays = 91
		}},
		{"negative division component", func(d *domain.CreateSchemeRequest) {
			d.InterestDivision = domain.InterestDivision{
				Scheme:       decimal.NewFromInt(-10),
				MainWallet:   decimal.NewFromInt(70),
				IncomeWallet: decimal.NewFromInt(40),
			}
		}},
		{"unknown bucket", func(d *domain.CreateSchemeRequest) {
			d.InterestTransferType = []domain.Bucket{"SAVINGS"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)

			_, err := Validate(draft)

			require.Error(t, err)
			assert.ErrorIs(t, err, customError.ErrInvalidRange)
		})
	}
}

func TestValidate_EmptyTransferType(t *testing.T) {
	draft := validDraft()
	draft.InterestTransferType = nil

	_, err := Validate(draft)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrEmptyTransferType)
}

func TestValidate_DedupesTransferType(t *testing.T) {
	draft := validDraft()
	draft.InterestTransferType = []domain.Bucket{
		domain.BucketIncome, domain.BucketMain, domain.BucketIncome,
	}

	scheme, err := Validate(draft)

	require.NoError(t, err)
	assert.Equal(t, []domain.Bucket{domain.BucketMain, domain.BucketIncome}, scheme.InterestTransferType)
}
