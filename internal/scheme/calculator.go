package scheme

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsawant/invest-engine/internal/domain"
)

// All interest math uses a fixed 365-day year, never 360 and never leap-aware.
var daysPerYear = decimal.NewFromInt(365)

// BuildSchedule projects a validated scheme plus a principal and start date
// into the concrete transfer timeline: one interest event per full calculation
// period and a maturity event returning the principal. It is pure and
// deterministic; identical inputs always produce identical events. IDs and
// persistence status are left for the caller to assign.
//
// A trailing remainder period (maturityDays mod interestCalculationDays) pays
// no separate interest; it is covered by the maturity event's principal
// return. A bucket named in the interest division but absent from the
// transfer-type set receives nothing and the remaining buckets are not
// renormalized; that matches observed product behavior and is kept as-is.
func BuildSchedule(s *domain.FDScheme, principal decimal.Decimal, start time.Time) []*domain.ScheduleEvent {
	start = start.Truncate(24 * time.Hour)

	cycles := s.MaturityDays / s.InterestCalculationDays
	events := make([]*domain.ScheduleEvent, 0, cycles+1)

	gross := cycleInterest(principal, s.InterestPercent, s.InterestCalculationDays)
	tax := percentOf(gross, s.TaxDeductionPercent)
	net := gross.Sub(tax)

	for i := 1; i <= cycles; i++ {
		event := &domain.ScheduleEvent{
			SchemeID:    s.SchemeID,
			Seq:         i,
			Type:        domain.EventInterest,
			DueDate:     start.AddDate(0, 0, i*s.InterestCalculationDays),
			GrossAmount: gross,
			TaxAmount:   tax,
			NetAmount:   net,
		}
		for _, b := range domain.AllBuckets() {
			if !s.TransfersTo(b) {
				continue
			}
			setAmount(event, b, percentOf(net, s.InterestDivision.Share(b)))
		}
		events = append(events, event)
	}

	// Principal return is never taxed or reduced beyond the configured split.
	maturity := &domain.ScheduleEvent{
		SchemeID:    s.SchemeID,
		Seq:         cycles + 1,
		Type:        domain.EventMaturity,
		DueDate:     start.AddDate(0, 0, s.MaturityDays),
		GrossAmount: principal,
		TaxAmount:   decimal.Zero,
		NetAmount:   principal,
	}
	maturity.MainAmount = percentOf(principal, s.MaturityTransferDivision.MainWallet)
	maturity.IncomeAmount = percentOf(principal, s.MaturityTransferDivision.IncomeWallet)
	maturity.SchemeAmount = decimal.Zero
	events = append(events, maturity)

	return events
}

// cycleInterest computes the gross interest for one calculation period:
// principal * rate/100 * days/365, rounded to currency precision.
func cycleInterest(principal, ratePercent decimal.Decimal, days int) decimal.Decimal {
	return principal.
		Mul(ratePercent).Div(oneHundred).
		Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear).
		Round(2)
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(oneHundred).Round(2)
}

func setAmount(e *domain.ScheduleEvent, b domain.Bucket, amount decimal.Decimal) {
	switch b {
	case domain.BucketScheme:
		e.SchemeAmount = amount
	case domain.BucketMain:
		e.MainAmount = amount
	case domain.BucketIncome:
		e.IncomeAmount = amount
	}
}
