package service

import (
	"context"
	"log"
	"time"

	"cortecaja/backend/internal/domain"
	"cortecaja/backend/internal/finance"
	"cortecaja/backend/internal/store"
)

// DailyRevenue attributes recognized revenue to a calendar day. Attribution
// is independent of cash-cut windows: an order recognizes its deposit on the
// origination day and its balance on the settlement day; a financed sale
// recognizes its down payment at origination and the merchandise share of
// each credit payment on the day the payment arrives. Every recognized slice
// carries a proportional share of item cost and tax, so a sale's lifetime
// revenue sums exactly to its total. The interest share of credit payments
// is reported as finance income, never as merchandise revenue.
func (s *Service) DailyRevenue(ctx context.Context, date string) (domain.DailyRevenueReport, error) {
	if date == "" {
		date = s.clock.Now().Format("2006-01-02")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.DailyRevenueReport{}, store.ErrInvalidRecord
	}

	cacheKey := "revenue:" + date
	if cached, found, err := s.reports.Get(ctx, cacheKey); err == nil && found {
		return *cached, nil
	} else if err != nil {
		log.Printf("[reports] WARN: report cache read failed key=%s: %v", cacheKey, err)
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return domain.DailyRevenueReport{}, err
	}

	report := computeDailyRevenue(snap, day)
	report.Date = date

	if err := s.reports.Set(ctx, cacheKey, &report, s.reportTTL); err != nil {
		log.Printf("[reports] WARN: report cache write failed key=%s: %v", cacheKey, err)
	}
	return report, nil
}

func computeDailyRevenue(snap *domain.ReconciliationSnapshot, day time.Time) domain.DailyRevenueReport {
	var report domain.DailyRevenueReport

	salesByID := make(map[string]domain.Sale, len(snap.Sales))
	for _, sale := range snap.Sales {
		salesByID[sale.ID] = sale
	}

	for _, sale := range snap.Sales {
		if sale.Status == domain.SaleStatusVoided {
			continue
		}

		if sameDay(sale.CreatedAt, day) {
			report.SaleCount++
			if sale.IsOrder || sale.PaymentMethod == domain.PayCredit {
				// Only the money collected at origination (order deposit or
				// credit down payment) is recognized now; the rest follows
				// the settlement or the payment stream.
				report.RevenueCents += sale.DepositCents
				report.CostCents += finance.ProportionalCost(sale.ItemsCostCents(), sale.DepositCents, sale.TotalCents)
				report.TaxCents += finance.ProportionalCost(sale.TaxCents, sale.DepositCents, sale.TotalCents)
			} else {
				report.RevenueCents += sale.TotalCents
				report.CostCents += sale.ItemsCostCents()
				report.TaxCents += sale.TaxCents
			}
		}

		if sale.IsOrder && sale.BalancePaymentDate != nil && sameDay(*sale.BalancePaymentDate, day) {
			report.RevenueCents += sale.BalancePaidCents
			report.CostCents += finance.ProportionalCost(sale.ItemsCostCents(), sale.BalancePaidCents, sale.TotalCents)
			report.TaxCents += finance.ProportionalCost(sale.TaxCents, sale.BalancePaidCents, sale.TotalCents)
		}
	}

	for _, credit := range snap.Credits {
		if credit.Status == domain.CreditStatusCancelled {
			continue
		}
		interest := credit.TotalCents - credit.PrincipalCents
		for _, payment := range credit.Payments {
			if !sameDay(payment.Date, day) {
				continue
			}
			interestShare := finance.ProportionalCost(interest, payment.AmountCents, credit.TotalCents)
			merchandise := payment.AmountCents - interestShare
			report.RevenueCents += merchandise
			report.FinanceIncomeCents += interestShare
			if sale, ok := salesByID[credit.SaleID]; ok && sale.TotalCents > 0 {
				report.CostCents += finance.ProportionalCost(sale.ItemsCostCents(), merchandise, sale.TotalCents)
				report.TaxCents += finance.ProportionalCost(sale.TaxCents, merchandise, sale.TotalCents)
			}
		}
	}

	report.ProfitCents = report.RevenueCents - report.TaxCents - report.CostCents
	return report
}

func sameDay(t time.Time, day time.Time) bool {
	return t.Year() == day.Year() && t.Month() == day.Month() && t.Day() == day.Day()
}
