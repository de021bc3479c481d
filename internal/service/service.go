package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cortecaja/backend/internal/cache"
	"cortecaja/backend/internal/clock"
	"cortecaja/backend/internal/domain"
	"cortecaja/backend/internal/finance"
	"cortecaja/backend/internal/store"
	"cortecaja/backend/internal/xid"
)

var (
	ErrUnauthorized     = errors.New("admin role required")
	ErrAlreadyPaid      = errors.New("credit already settled")
	ErrOverpayment      = errors.New("payment exceeds remaining balance")
	ErrNoRateConfigured = errors.New("credit has no interest rate configured")
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Service struct {
	repo            store.Repository
	clock           clock.Clock
	reports         cache.ReportCache
	reportTTL       time.Duration
	moraRatePercent float64
}

func New(repo store.Repository, clk clock.Clock, reports cache.ReportCache, reportTTL time.Duration, moraRatePercent float64) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if reports == nil {
		reports = cache.NoopReportCache{}
	}
	if reportTTL <= 0 {
		reportTTL = 5 * time.Minute
	}
	if moraRatePercent < 0 {
		moraRatePercent = 0
	}

	return &Service{
		repo:            repo,
		clock:           clk,
		reports:         reports,
		reportTTL:       reportTTL,
		moraRatePercent: moraRatePercent,
	}
}

// ResolveWindow returns the interval the next cash cut would cover.
func (s *Service) ResolveWindow(ctx context.Context) (domain.Window, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return domain.Window{}, err
	}
	return resolveWindow(snap.Cuts, s.clock.Now()), nil
}

// PreviewCashCut aggregates the open window without recording anything.
// Cashiers use it to see expected drawer cash before counting.
func (s *Service) PreviewCashCut(ctx context.Context) (domain.CashCutPreview, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return domain.CashCutPreview{}, err
	}
	window := resolveWindow(snap.Cuts, s.clock.Now())
	return domain.CashCutPreview{
		Window: window,
		Totals: aggregateWindow(snap, window),
	}, nil
}

func (s *Service) CreateCashCut(ctx context.Context, req domain.CashCutCreateRequest) (domain.CashCutResponse, error) {
	for _, d := range req.Denominations {
		if d.ValueCents < 1 || d.Count < 0 {
			return domain.CashCutResponse{}, store.ErrInvalidRecord
		}
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return domain.CashCutResponse{}, err
	}

	now := s.clock.Now()
	window := resolveWindow(snap.Cuts, now)
	totals := aggregateWindow(snap, window)
	counted := countedCents(req.Denominations)

	expected := totals.NetCashExpectedCents()
	if counted == 0 && expected > 0 {
		return domain.CashCutResponse{}, store.ErrNothingCounted
	}

	actor, _ := ActorFromContext(ctx)
	cut := domain.CashCut{
		ID:                xid.New("cut"),
		CutAt:             now,
		Totals:            totals,
		CashExpectedCents: expected,
		CashCountedCents:  counted,
		DifferenceCents:   counted - expected,
		Denominations:     req.Denominations,
		Notes:             strings.TrimSpace(req.Notes),
		CreatedBy:         defaultString(actor.Username, "system"),
	}

	created, err := s.repo.CreateCashCut(ctx, cut)
	if err != nil {
		return domain.CashCutResponse{}, err
	}

	s.logAudit(ctx, "cash_cut_create", "cash_cut", created.ID,
		fmt.Sprintf("expected=%d,counted=%d,difference=%d", expected, counted, created.DifferenceCents))

	return domain.CashCutResponse{CashCut: *created}, nil
}

// ReverseCashCut deletes a recorded cut so its interval folds back into the
// open window. Only an admin principal may reverse; the deleted cut is
// preserved in the audit trail, not in the ledger.
func (s *Service) ReverseCashCut(ctx context.Context, cutID string, reason string, principal domain.Actor) (domain.CashCutResponse, error) {
	if principal.Role != "admin" {
		return domain.CashCutResponse{}, ErrUnauthorized
	}
	if cutID == "" {
		return domain.CashCutResponse{}, store.ErrInvalidRecord
	}
	if reason == "" {
		reason = "unspecified"
	}

	cut, err := s.repo.GetCashCut(ctx, cutID)
	if err != nil {
		return domain.CashCutResponse{}, err
	}
	if err := s.repo.DeleteCashCut(ctx, cutID); err != nil {
		return domain.CashCutResponse{}, err
	}

	s.logAudit(WithActor(ctx, principal), "cash_cut_reverse", "cash_cut", cut.ID,
		fmt.Sprintf("cut_at=%s,expected=%d,counted=%d,reason=%s",
			cut.CutAt.Format(time.RFC3339), cut.CashExpectedCents, cut.CashCountedCents, reason))

	return domain.CashCutResponse{CashCut: *cut}, nil
}

func (s *Service) GetCashCut(ctx context.Context, cutID string) (domain.CashCutResponse, error) {
	cut, err := s.repo.GetCashCut(ctx, cutID)
	if err != nil {
		return domain.CashCutResponse{}, err
	}
	return domain.CashCutResponse{CashCut: *cut}, nil
}

func (s *Service) ListCashCuts(ctx context.Context, date string, limit int) (domain.CashCutListResponse, error) {
	var from, to time.Time
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return domain.CashCutListResponse{}, store.ErrInvalidRecord
		}
		from = day
		to = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if limit < 1 {
		limit = 100
	}

	cuts, err := s.repo.ListCashCuts(ctx, from, to, limit)
	if err != nil {
		return domain.CashCutListResponse{}, err
	}
	return domain.CashCutListResponse{Cuts: cuts}, nil
}

func (s *Service) OpenCredit(ctx context.Context, req domain.CreditOpenRequest) (domain.CreditResponse, error) {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	if req.CustomerID == "" || req.TotalCents < 1 {
		return domain.CreditResponse{}, store.ErrInvalidRecord
	}
	if req.DownPaymentCents < 0 || req.DownPaymentCents > req.TotalCents {
		return domain.CreditResponse{}, store.ErrInvalidRecord
	}
	if req.MonthlyRatePercent < 0 || req.TermMonths < 1 {
		return domain.CreditResponse{}, store.ErrInvalidRecord
	}

	now := s.clock.Now()
	terms := finance.Financing(req.TotalCents, req.DownPaymentCents, req.MonthlyRatePercent, req.TermMonths)
	credit := domain.CreditAccount{
		ID:                  xid.New("cr"),
		SaleID:              req.SaleID,
		CustomerID:          req.CustomerID,
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CreatedAt:           now,
		DueDate:             now.AddDate(0, req.TermMonths, 0),
		PrincipalCents:      terms.PrincipalCents,
		DownPaymentCents:    req.DownPaymentCents,
		TotalCents:          terms.TotalCents,
		MonthlyRatePercent:  req.MonthlyRatePercent,
		TermMonths:          req.TermMonths,
		MonthlyPaymentCents: terms.MonthlyPaymentCents,
		Status:              domain.CreditStatusPending,
		Payments:            []domain.CreditPayment{},
	}

	created, err := s.repo.CreateCreditAccount(ctx, credit)
	if err != nil {
		return domain.CreditResponse{}, err
	}

	s.logAudit(ctx, "credit_open", "credit", created.ID,
		fmt.Sprintf("customer=%s,principal=%d,total=%d,term=%d", created.CustomerID, created.PrincipalCents, created.TotalCents, created.TermMonths))

	return domain.CreditResponse{Credit: *created}, nil
}

func (s *Service) AddCreditPayment(ctx context.Context, creditID string, req domain.CreditPaymentRequest) (domain.CreditResponse, error) {
	if req.AmountCents < 1 {
		return domain.CreditResponse{}, store.ErrInvalidRecord
	}
	if !isSupportedPaymentMethod(req.Method) {
		return domain.CreditResponse{}, store.ErrInvalidRecord
	}

	credit, err := s.repo.GetCreditAccount(ctx, creditID)
	if err != nil {
		return domain.CreditResponse{}, err
	}
	if credit.Status == domain.CreditStatusPaid || credit.Status == domain.CreditStatusCancelled {
		return domain.CreditResponse{}, ErrAlreadyPaid
	}
	if req.AmountCents > credit.RemainingCents() {
		return domain.CreditResponse{}, ErrOverpayment
	}

	payment := domain.CreditPayment{
		ID:          xid.New("pay"),
		CreditID:    credit.ID,
		Date:        s.clock.Now(),
		AmountCents: req.AmountCents,
		Method:      req.Method,
		Note:        strings.TrimSpace(req.Note),
	}

	newPaid := credit.PaidCents + req.AmountCents
	status := credit.Status
	if newPaid >= credit.TotalCents {
		status = domain.CreditStatusPaid
	}

	updated, err := s.repo.AppendCreditPayment(ctx, credit.ID, payment, newPaid, credit.SavingsCents, status)
	if err != nil {
		return domain.CreditResponse{}, err
	}

	s.logAudit(ctx, "credit_payment", "credit", credit.ID,
		fmt.Sprintf("amount=%d,method=%s,paid=%d,status=%s", req.AmountCents, req.Method, newPaid, status))

	return domain.CreditResponse{Credit: *updated}, nil
}

// LiquidateCredit settles an account early. The unaccrued share of the
// scheduled interest is forgiven and recorded as the customer's savings.
func (s *Service) LiquidateCredit(ctx context.Context, creditID string, req domain.CreditLiquidateRequest) (domain.CreditLiquidationResponse, error) {
	if !isSupportedPaymentMethod(req.Method) {
		return domain.CreditLiquidationResponse{}, store.ErrInvalidRecord
	}

	credit, err := s.repo.GetCreditAccount(ctx, creditID)
	if err != nil {
		return domain.CreditLiquidationResponse{}, err
	}
	if credit.Status == domain.CreditStatusPaid || credit.Status == domain.CreditStatusCancelled {
		return domain.CreditLiquidationResponse{}, ErrAlreadyPaid
	}
	if credit.MonthlyRatePercent <= 0 {
		return domain.CreditLiquidationResponse{}, ErrNoRateConfigured
	}

	now := s.clock.Now()
	scheduledInterest := credit.TotalCents - credit.PrincipalCents
	payoff := finance.EarlyPayoff(credit.PrincipalCents, scheduledInterest, credit.PaidCents, credit.TermMonths, credit.CreatedAt, now)
	if payoff.RemainingToPayCents < 1 {
		return domain.CreditLiquidationResponse{}, ErrAlreadyPaid
	}

	payment := domain.CreditPayment{
		ID:          xid.New("pay"),
		CreditID:    credit.ID,
		Date:        now,
		AmountCents: payoff.RemainingToPayCents,
		Method:      req.Method,
		Note:        defaultString(strings.TrimSpace(req.Note), "early payoff"),
		Liquidation: true,
	}

	newPaid := credit.PaidCents + payoff.RemainingToPayCents
	updated, err := s.repo.AppendCreditPayment(ctx, credit.ID, payment, newPaid, payoff.SavingsCents, domain.CreditStatusPaid)
	if err != nil {
		return domain.CreditLiquidationResponse{}, err
	}

	s.logAudit(ctx, "credit_liquidate", "credit", credit.ID,
		fmt.Sprintf("amount=%d,savings=%d,days=%d", payoff.RemainingToPayCents, payoff.SavingsCents, payoff.DaysElapsed))

	return domain.CreditLiquidationResponse{
		Credit: *updated,
		Payoff: toPayoffDetail(payoff),
	}, nil
}

// GetCreditStatement returns the account with its derived state as of now:
// effective status, accrued mora, and a settle-today quote for open
// accounts.
func (s *Service) GetCreditStatement(ctx context.Context, creditID string) (domain.CreditStatement, error) {
	credit, err := s.repo.GetCreditAccount(ctx, creditID)
	if err != nil {
		return domain.CreditStatement{}, err
	}

	now := s.clock.Now()
	statement := domain.CreditStatement{
		Credit:          *credit,
		EffectiveStatus: credit.Status,
	}

	if credit.Status == domain.CreditStatusPending {
		remaining := credit.RemainingCents()
		days, amount := finance.Mora(remaining, s.moraRatePercent, credit.DueDate, now)
		if days > 0 {
			statement.EffectiveStatus = domain.CreditStatusOverdue
		}
		statement.Mora = domain.MoraDetail{DaysOverdue: days, AmountCents: amount}

		// No settle-today quote without an interest scheme to settle against.
		if credit.MonthlyRatePercent > 0 {
			scheduledInterest := credit.TotalCents - credit.PrincipalCents
			payoff := finance.EarlyPayoff(credit.PrincipalCents, scheduledInterest, credit.PaidCents, credit.TermMonths, credit.CreatedAt, now)
			detail := toPayoffDetail(payoff)
			statement.Payoff = &detail
		}
	}

	return statement, nil
}

func (s *Service) ListCreditAccounts(ctx context.Context, status string, limit int) (domain.CreditListResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if limit < 1 {
		limit = 200
	}

	// Overdue is derived, so the filter fetches pending accounts and keeps
	// the ones past due with an outstanding balance.
	queryStatus := status
	if status == domain.CreditStatusOverdue {
		queryStatus = domain.CreditStatusPending
	}

	credits, err := s.repo.ListCreditAccounts(ctx, queryStatus, limit)
	if err != nil {
		return domain.CreditListResponse{}, err
	}

	now := s.clock.Now()
	result := make([]domain.CreditAccount, 0, len(credits))
	for _, credit := range credits {
		if credit.Status == domain.CreditStatusPending && credit.RemainingCents() > 0 && finance.DaysBetween(credit.DueDate, now) > 0 {
			credit.Status = domain.CreditStatusOverdue
		}
		if status == domain.CreditStatusOverdue && credit.Status != domain.CreditStatusOverdue {
			continue
		}
		result = append(result, credit)
	}

	return domain.CreditListResponse{Credits: result}, nil
}

// IngestSale upserts a sale record pushed by the point-of-sale frontend.
func (s *Service) IngestSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	if sale.TotalCents < 0 || sale.DepositCents < 0 || sale.BalanceCents < 0 {
		return domain.Sale{}, store.ErrInvalidRecord
	}
	if sale.PaymentMethod != "" && !isSupportedPaymentMethod(sale.PaymentMethod) && sale.PaymentMethod != domain.PayMixed && sale.PaymentMethod != domain.PayCredit {
		return domain.Sale{}, store.ErrInvalidRecord
	}
	if sale.IsOrder && sale.DepositCents+sale.BalanceCents != sale.TotalCents {
		return domain.Sale{}, store.ErrInvalidRecord
	}

	saved, err := s.repo.UpsertSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, err
	}
	return *saved, nil
}

func (s *Service) IngestExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if expense.AmountCents < 1 || !isSupportedPaymentMethod(expense.Method) {
		return domain.Expense{}, store.ErrInvalidRecord
	}
	if expense.Date.IsZero() {
		expense.Date = s.clock.Now()
	}
	created, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return domain.Expense{}, err
	}
	return *created, nil
}

func (s *Service) IngestRefund(ctx context.Context, refund domain.Refund) (domain.Refund, error) {
	if refund.AmountCents < 1 || !isSupportedPaymentMethod(refund.Method) {
		return domain.Refund{}, store.ErrInvalidRecord
	}
	if refund.Date.IsZero() {
		refund.Date = s.clock.Now()
	}
	created, err := s.repo.CreateRefund(ctx, refund)
	if err != nil {
		return domain.Refund{}, err
	}
	return *created, nil
}

func (s *Service) ListAuditLogs(ctx context.Context, date string, limit int) ([]domain.AuditLog, error) {
	var from, to time.Time
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, store.ErrInvalidRecord
		}
		from = day
		to = day.AddDate(0, 0, 1)
	}
	if limit < 1 {
		limit = 200
	}
	return s.repo.ListAuditLogs(ctx, from, to, limit)
}

func (s *Service) logAudit(ctx context.Context, action string, entityType string, entityID string, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = domain.Actor{Username: "system", Role: "system"}
	}

	if err := s.repo.CreateAuditLog(ctx, domain.AuditLog{
		ID:            xid.New("audit"),
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		Detail:        detail,
		CreatedAt:     s.clock.Now(),
	}); err != nil {
		log.Printf("[audit] WARN: failed to write audit log action=%s entity=%s/%s: %v", action, entityType, entityID, err)
	}
}

func toPayoffDetail(p finance.Payoff) domain.PayoffDetail {
	return domain.PayoffDetail{
		DaysElapsed:          p.DaysElapsed,
		InterestAccruedCents: p.InterestAccruedCents,
		TotalDebtCents:       p.TotalDebtCents,
		RemainingToPayCents:  p.RemainingToPayCents,
		SavingsCents:         p.SavingsCents,
	}
}

func defaultString(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func isSupportedPaymentMethod(method string) bool {
	switch method {
	case domain.PayCash, domain.PayCard, domain.PayTransfer:
		return true
	}
	return false
}
