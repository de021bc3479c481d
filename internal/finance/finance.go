// Package finance holds the pure money math for flat-rate financing: the
// simple-interest schedule fixed at origination, the daily late fee, and
// the early-payoff proration. All functions take and return integer cents;
// decimal arithmetic is internal and every result is rounded half-up.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Terms is the payment schedule fixed when a credit account is opened.
// Interest is flat and non-amortized: it is computed once on the full
// principal for the whole term and never recalculated as the balance drops.
type Terms struct {
	PrincipalCents      int64
	InterestCents       int64
	TotalCents          int64
	MonthlyPaymentCents int64
}

var hundred = decimal.NewFromInt(100)

// Financing computes the flat schedule for a financed purchase.
// totalCents is the merchandise total; the down payment reduces the
// financed principal but accrues no interest.
func Financing(totalCents, downPaymentCents int64, monthlyRatePercent float64, termMonths int) Terms {
	principal := totalCents - downPaymentCents
	if principal < 0 {
		principal = 0
	}
	p := decimal.NewFromInt(principal)
	rate := decimal.NewFromFloat(monthlyRatePercent).Div(hundred)
	interest := p.Mul(rate).Mul(decimal.NewFromInt(int64(termMonths))).Round(0)
	total := p.Add(interest)

	var monthly decimal.Decimal
	if termMonths > 0 {
		monthly = total.Div(decimal.NewFromInt(int64(termMonths))).Round(0)
	}
	return Terms{
		PrincipalCents:      principal,
		InterestCents:       interest.IntPart(),
		TotalCents:          total.IntPart(),
		MonthlyPaymentCents: monthly.IntPart(),
	}
}

// DaysBetween counts whole calendar days from a to b, comparing dates only.
// Hours and minutes never produce partial days; b before a yields zero.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(bd.Sub(ad).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Mora is the late fee accrued on an overdue balance. The monthly rate is
// converted to a daily rate over a 30-day month and applied linearly per
// day overdue. It is a pure function of its inputs: callers recompute it
// whenever they need it and never persist the result.
func Mora(outstandingCents int64, monthlyRatePercent float64, dueDate, asOf time.Time) (daysOverdue int, amountCents int64) {
	if outstandingCents <= 0 || !asOf.After(dueDate) {
		return 0, 0
	}
	daysOverdue = DaysBetween(dueDate, asOf)
	if daysOverdue == 0 {
		return 0, 0
	}
	daily := decimal.NewFromFloat(monthlyRatePercent).Div(hundred).Div(decimal.NewFromInt(30))
	amount := decimal.NewFromInt(outstandingCents).
		Mul(daily).
		Mul(decimal.NewFromInt(int64(daysOverdue))).
		Round(0)
	return daysOverdue, amount.IntPart()
}

// Payoff is a settle-now quote for an open credit account.
type Payoff struct {
	DaysElapsed          int
	InterestAccruedCents int64
	TotalDebtCents       int64
	RemainingToPayCents  int64
	SavingsCents         int64
}

// EarlyPayoff forgives the unaccrued share of scheduled interest when a
// customer settles before term. Accrued interest is prorated linearly over
// the term at 30 days per month and clamped to the scheduled amount, so
// paying off at or past term saves nothing.
func EarlyPayoff(principalCents, scheduledInterestCents, paidCents int64, termMonths int, openedAt, asOf time.Time) Payoff {
	termDays := termMonths * 30
	daysElapsed := DaysBetween(openedAt, asOf)

	accrued := scheduledInterestCents
	if termDays > 0 && daysElapsed < termDays {
		accrued = decimal.NewFromInt(scheduledInterestCents).
			Mul(decimal.NewFromInt(int64(daysElapsed))).
			Div(decimal.NewFromInt(int64(termDays))).
			Round(0).
			IntPart()
	}

	totalDebt := principalCents + accrued
	remaining := totalDebt - paidCents
	if remaining < 0 {
		remaining = 0
	}
	savings := scheduledInterestCents - accrued
	if savings < 0 {
		savings = 0
	}
	return Payoff{
		DaysElapsed:          daysElapsed,
		InterestAccruedCents: accrued,
		TotalDebtCents:       totalDebt,
		RemainingToPayCents:  remaining,
		SavingsCents:         savings,
	}
}

// ProportionalCost allocates a sale's item cost to a partial collection,
// rounding half-up. Used by revenue attribution so the cost recognized for
// a deposit plus the cost recognized for its balance equals the full cost.
func ProportionalCost(costCents, portionCents, totalCents int64) int64 {
	if totalCents <= 0 {
		return 0
	}
	return decimal.NewFromInt(costCents).
		Mul(decimal.NewFromInt(portionCents)).
		Div(decimal.NewFromInt(totalCents)).
		Round(0).
		IntPart()
}
