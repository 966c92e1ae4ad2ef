package scheme

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector_Totals(t *testing.T) {
	s := fixedScheme()
	s.InterestCalculationDays = 90
	s.TransferScheduleDays = 90
	s.MaturityDays = 365
	s.TaxDeductionPercent = decimal.NewFromInt(10)

	projector := NewProjector(nil, time.Minute, logrus.New())

	projection, err := projector.Project(context.Background(), s, decimal.NewFromInt(10000), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "FDS-TEST0001", projection.SchemeID)
	require.Len(t, projection.Events, 5)

	// Per cycle: gross 123.29, tax 12.33, net 110.96; four cycles.
	assert.True(t, projection.TotalTax.Equal(decimal.NewFromFloat(49.32)), "tax %s", projection.TotalTax)
	assert.True(t, projection.TotalInterest.Equal(decimal.NewFromFloat(443.84)), "interest %s", projection.TotalInterest)
	// Payout = interest + principal return.
	assert.True(t, projection.TotalPayout.Equal(decimal.NewFromFloat(10443.84)), "payout %s", projection.TotalPayout)
}

func TestProjector_DeterministicWithoutCache(t *testing.T) {
	s := fixedScheme()
	projector := NewProjector(nil, time.Minute, logrus.New())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	principal := decimal.NewFromInt(25000)

	first, err := projector.Project(context.Background(), s, principal, now)
	require.NoError(t, err)
	second, err := projector.Project(context.Background(), s, principal, now)
	require.NoError(t, err)

	assert.True(t, first.TotalPayout.Equal(second.TotalPayout))
	require.Equal(t, len(first.Events), len(second.Events))
	for i := range first.Events {
		assert.Equal(t, first.Events[i].DueDate, second.Events[i].DueDate)
		assert.True(t, first.Events[i].NetAmount.Equal(second.Events[i].NetAmount))
	}
}
