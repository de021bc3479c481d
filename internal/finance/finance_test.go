package finance

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFinancingFlatSchedule(t *testing.T) {
	terms := Financing(100000, 0, 2.0, 3)

	if terms.PrincipalCents != 100000 {
		t.Fatalf("principal = %d, want 100000", terms.PrincipalCents)
	}
	if terms.InterestCents != 6000 {
		t.Fatalf("interest = %d, want 6000", terms.InterestCents)
	}
	if terms.TotalCents != 106000 {
		t.Fatalf("total = %d, want 106000", terms.TotalCents)
	}
	// 106000 / 3 = 35333.33, rounded half-up to whole cents.
	if terms.MonthlyPaymentCents != 35333 {
		t.Fatalf("monthly = %d, want 35333", terms.MonthlyPaymentCents)
	}
}

func TestFinancingDownPaymentReducesPrincipal(t *testing.T) {
	terms := Financing(150000, 50000, 2.0, 3)

	if terms.PrincipalCents != 100000 {
		t.Fatalf("principal = %d, want 100000", terms.PrincipalCents)
	}
	if terms.TotalCents != 106000 {
		t.Fatalf("total = %d, want 106000", terms.TotalCents)
	}
}

func TestFinancingZeroRate(t *testing.T) {
	terms := Financing(90000, 0, 0, 3)

	if terms.InterestCents != 0 {
		t.Fatalf("interest = %d, want 0", terms.InterestCents)
	}
	if terms.TotalCents != 90000 {
		t.Fatalf("total = %d, want 90000", terms.TotalCents)
	}
	if terms.MonthlyPaymentCents != 30000 {
		t.Fatalf("monthly = %d, want 30000", terms.MonthlyPaymentCents)
	}
}

func TestMoraExactValue(t *testing.T) {
	due := date(2026, time.March, 1)
	asOf := date(2026, time.March, 6)

	days, amount := Mora(100000, 2.0, due, asOf)
	if days != 5 {
		t.Fatalf("days = %d, want 5", days)
	}
	// 100000 * (0.02/30) * 5 = 333.33, rounded to 333.
	if amount != 333 {
		t.Fatalf("amount = %d, want 333", amount)
	}
}

func TestMoraNotDueYet(t *testing.T) {
	due := date(2026, time.March, 10)

	days, amount := Mora(100000, 2.0, due, date(2026, time.March, 10))
	if days != 0 || amount != 0 {
		t.Fatalf("on due date: days=%d amount=%d, want 0/0", days, amount)
	}

	days, amount = Mora(100000, 2.0, due, date(2026, time.March, 5))
	if days != 0 || amount != 0 {
		t.Fatalf("before due date: days=%d amount=%d, want 0/0", days, amount)
	}
}

func TestMoraIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2026, time.March, 1, 23, 50, 0, 0, time.UTC)
	asOf := time.Date(2026, time.March, 2, 0, 10, 0, 0, time.UTC)

	days, _ := Mora(100000, 2.0, due, asOf)
	if days != 1 {
		t.Fatalf("days = %d, want 1 (date-only comparison)", days)
	}
}

func TestMoraZeroOutstanding(t *testing.T) {
	days, amount := Mora(0, 2.0, date(2026, time.March, 1), date(2026, time.April, 1))
	if days != 0 || amount != 0 {
		t.Fatalf("days=%d amount=%d, want 0/0", days, amount)
	}
}

func TestEarlyPayoffSameDay(t *testing.T) {
	opened := date(2026, time.January, 10)
	p := EarlyPayoff(100000, 6000, 0, 3, opened, opened)

	if p.InterestAccruedCents != 0 {
		t.Fatalf("accrued = %d, want 0", p.InterestAccruedCents)
	}
	if p.TotalDebtCents != 100000 {
		t.Fatalf("debt = %d, want 100000 (principal only)", p.TotalDebtCents)
	}
	if p.SavingsCents != 6000 {
		t.Fatalf("savings = %d, want 6000 (all interest forgiven)", p.SavingsCents)
	}
}

func TestEarlyPayoffMidTerm(t *testing.T) {
	opened := date(2026, time.January, 1)
	asOf := date(2026, time.February, 15) // 45 of 90 days

	p := EarlyPayoff(100000, 6000, 20000, 3, opened, asOf)
	if p.DaysElapsed != 45 {
		t.Fatalf("days = %d, want 45", p.DaysElapsed)
	}
	if p.InterestAccruedCents != 3000 {
		t.Fatalf("accrued = %d, want 3000", p.InterestAccruedCents)
	}
	if p.TotalDebtCents != 103000 {
		t.Fatalf("debt = %d, want 103000", p.TotalDebtCents)
	}
	if p.RemainingToPayCents != 83000 {
		t.Fatalf("remaining = %d, want 83000", p.RemainingToPayCents)
	}
	if p.SavingsCents != 3000 {
		t.Fatalf("savings = %d, want 3000", p.SavingsCents)
	}
}

func TestEarlyPayoffPastTermClamps(t *testing.T) {
	opened := date(2026, time.January, 1)
	asOf := date(2026, time.June, 1) // well past a 90-day term

	p := EarlyPayoff(100000, 6000, 0, 3, opened, asOf)
	if p.InterestAccruedCents != 6000 {
		t.Fatalf("accrued = %d, want 6000 (clamped to scheduled)", p.InterestAccruedCents)
	}
	if p.SavingsCents != 0 {
		t.Fatalf("savings = %d, want 0", p.SavingsCents)
	}
}

func TestProportionalCostSumsToWhole(t *testing.T) {
	// Deposit 30000 of a 100000 sale with 45000 cost.
	depositCost := ProportionalCost(45000, 30000, 100000)
	balanceCost := ProportionalCost(45000, 70000, 100000)

	if depositCost != 13500 {
		t.Fatalf("deposit cost = %d, want 13500", depositCost)
	}
	if depositCost+balanceCost != 45000 {
		t.Fatalf("split cost sums to %d, want 45000", depositCost+balanceCost)
	}
}

func TestDaysBetweenNeverNegative(t *testing.T) {
	if d := DaysBetween(date(2026, time.March, 10), date(2026, time.March, 1)); d != 0 {
		t.Fatalf("days = %d, want 0", d)
	}
}
