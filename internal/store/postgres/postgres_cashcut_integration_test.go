package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cortecaja/backend/internal/domain"
	"cortecaja/backend/internal/store"
)

func TestCashCutCreateAndReverseRoundTrip(t *testing.T) {
	databaseURL := os.Getenv("CORTECAJA_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set CORTECAJA_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	cutID := fmt.Sprintf("cut-it-%d", stamp)

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM cash_cuts WHERE id = $1`, cutID)
	})

	cutAt := time.Now().UTC().Truncate(time.Microsecond)
	created, err := s.CreateCashCut(ctx, domain.CashCut{
		ID:    cutID,
		CutAt: cutAt,
		Totals: domain.WindowTotals{
			CashCents:  50000,
			CardCents:  20000,
			TotalCents: 70000,
		},
		CashExpectedCents: 50000,
		CashCountedCents:  49500,
		DifferenceCents:   -500,
		Denominations: []domain.DenominationCount{
			{ValueCents: 20000, Count: 2},
			{ValueCents: 500, Count: 19},
		},
		Notes:     "integration test cut",
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("create cash cut: %v", err)
	}
	if created.ID != cutID {
		t.Fatalf("created id = %s, want %s", created.ID, cutID)
	}

	got, err := s.GetCashCut(ctx, cutID)
	if err != nil {
		t.Fatalf("get cash cut: %v", err)
	}
	if !got.CutAt.Equal(cutAt) {
		t.Fatalf("cut_at = %v, want %v", got.CutAt, cutAt)
	}
	if got.Totals.CashCents != 50000 || got.Totals.TotalCents != 70000 {
		t.Fatalf("totals round trip mismatch: %+v", got.Totals)
	}
	if got.DifferenceCents != -500 {
		t.Fatalf("difference = %d, want -500", got.DifferenceCents)
	}
	if len(got.Denominations) != 2 {
		t.Fatalf("denominations round trip mismatch: %+v", got.Denominations)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	found := false
	for _, cut := range snap.Cuts {
		if cut.ID == cutID {
			found = true
		}
	}
	if !found {
		t.Fatalf("snapshot is missing the created cut")
	}

	if err := s.DeleteCashCut(ctx, cutID); err != nil {
		t.Fatalf("delete cash cut: %v", err)
	}
	if _, err := s.GetCashCut(ctx, cutID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after reversal, got %v", err)
	}
	if err := s.DeleteCashCut(ctx, cutID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestCreditPaymentAppendIsAtomic(t *testing.T) {
	databaseURL := os.Getenv("CORTECAJA_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set CORTECAJA_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	creditID := fmt.Sprintf("cr-it-%d", stamp)

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM credit_payments WHERE credit_id = $1`, creditID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM credit_accounts WHERE id = $1`, creditID)
	})

	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err = s.CreateCreditAccount(ctx, domain.CreditAccount{
		ID:                  creditID,
		CustomerID:          "cust-it",
		CustomerName:        "Integration Customer",
		CreatedAt:           now,
		DueDate:             now.AddDate(0, 3, 0),
		PrincipalCents:      100000,
		TotalCents:          106000,
		MonthlyRatePercent:  2,
		TermMonths:          3,
		MonthlyPaymentCents: 35333,
		Status:              domain.CreditStatusPending,
	})
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}

	updated, err := s.AppendCreditPayment(ctx, creditID, domain.CreditPayment{
		AmountCents: 50000,
		Method:      domain.PayCash,
	}, 50000, 0, domain.CreditStatusPending)
	if err != nil {
		t.Fatalf("append payment: %v", err)
	}
	if updated.PaidCents != 50000 {
		t.Fatalf("paid = %d, want 50000", updated.PaidCents)
	}
	if len(updated.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(updated.Payments))
	}

	if _, err := s.AppendCreditPayment(ctx, "cr-missing", domain.CreditPayment{
		AmountCents: 100,
		Method:      domain.PayCash,
	}, 100, 0, domain.CreditStatusPending); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing credit, got %v", err)
	}
}
