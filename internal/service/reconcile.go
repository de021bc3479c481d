package service

import (
	"time"

	"cortecaja/backend/internal/domain"
)

// resolveWindow derives the current reconciliation window from cut history.
// The window opens the instant after the latest surviving cut and closes at
// now, so reversing the latest cut transparently widens the next window to
// re-cover the reversed interval.
func resolveWindow(cuts []domain.CashCut, now time.Time) domain.Window {
	var latest time.Time
	for _, cut := range cuts {
		if cut.CutAt.After(latest) {
			latest = cut.CutAt
		}
	}
	return domain.Window{Start: latest, End: now}
}

// aggregateWindow folds every collection event inside the window into
// per-method totals. It is a pure fold over the snapshot: running it twice
// over the same snapshot yields identical totals.
//
// A sale can contribute twice, from different windows: its origination
// (full total, or just the deposit for orders) and, for orders, the later
// balance settlement. Financed merchandise is reported under CreditCents but
// never counts as collected money; down payments and credit payments do.
func aggregateWindow(snap *domain.ReconciliationSnapshot, w domain.Window) domain.WindowTotals {
	var totals domain.WindowTotals

	for _, sale := range snap.Sales {
		if sale.Status == domain.SaleStatusVoided {
			continue
		}

		if w.Contains(sale.CreatedAt) {
			switch {
			case sale.PaymentMethod == domain.PayCredit:
				// The financed remainder never touches the drawer; a down
				// payment collected at origination does, split by method
				// when recorded, cash otherwise.
				totals.CreditCents += sale.TotalCents - sale.DepositCents
				bucketAmount(&totals, domain.PayMixed, sale.DepositCents, sale.PaymentSplits)
			case sale.IsOrder:
				bucketAmount(&totals, sale.PaymentMethod, sale.DepositCents, sale.PaymentSplits)
			default:
				bucketAmount(&totals, sale.PaymentMethod, sale.TotalCents, sale.PaymentSplits)
			}
		}

		if sale.IsOrder && sale.BalancePaymentDate != nil && w.Contains(*sale.BalancePaymentDate) {
			bucketAmount(&totals, sale.BalancePaymentMethod, sale.BalancePaidCents, nil)
			totals.OrderPaymentsCents += sale.BalancePaidCents
		}
	}

	for _, credit := range snap.Credits {
		if credit.Status == domain.CreditStatusCancelled {
			continue
		}
		for _, payment := range credit.Payments {
			if !w.Contains(payment.Date) {
				continue
			}
			bucketAmount(&totals, payment.Method, payment.AmountCents, nil)
			totals.CreditPaymentsCents += payment.AmountCents
		}
	}

	for _, expense := range snap.Expenses {
		if expense.Method == domain.PayCash && w.Contains(expense.Date) {
			totals.CashExpensesCents += expense.AmountCents
		}
	}
	for _, refund := range snap.Refunds {
		if refund.Method == domain.PayCash && w.Contains(refund.Date) {
			totals.CashRefundsCents += refund.AmountCents
		}
	}

	totals.TotalCents = totals.CashCents + totals.CardCents + totals.TransferCents
	return totals
}

// bucketAmount assigns a collected amount to its payment-method bucket.
// Mixed payments are distributed by their stored splits; any remainder the
// splits do not cover is treated as cash.
func bucketAmount(totals *domain.WindowTotals, method string, amount int64, splits []domain.PaymentSplit) {
	if amount <= 0 {
		return
	}
	if method == domain.PayMixed && len(splits) > 0 {
		var covered int64
		for _, split := range splits {
			if split.AmountCents <= 0 {
				continue
			}
			part := split.AmountCents
			if covered+part > amount {
				part = amount - covered
			}
			bucketAmount(totals, split.Method, part, nil)
			covered += part
			if covered >= amount {
				return
			}
		}
		if covered < amount {
			totals.CashCents += amount - covered
		}
		return
	}

	switch method {
	case domain.PayCard:
		totals.CardCents += amount
	case domain.PayTransfer:
		totals.TransferCents += amount
	default:
		totals.CashCents += amount
	}
}

func countedCents(denominations []domain.DenominationCount) int64 {
	var total int64
	for _, d := range denominations {
		total += d.ValueCents * int64(d.Count)
	}
	return total
}
