package domain

import "time"

// All monetary amounts are int64 cents. Decimal values exist only at the
// edges (percent rates, JSON presentation); the ledger itself never stores
// fractional currency.

const (
	PayCash     = "cash"
	PayCard     = "card"
	PayTransfer = "transfer"
	PayMixed    = "mixed"
	PayCredit   = "credit"
)

const (
	SaleStatusActive = "active"
	SaleStatusVoided = "voided"
)

const (
	CreditStatusPending   = "pending"
	CreditStatusOverdue   = "overdue"
	CreditStatusPaid      = "paid"
	CreditStatusCancelled = "cancelled"
)

type SaleItem struct {
	SKU        string `json:"sku,omitempty"`
	CostCents  int64  `json:"cost_cents"`
	PriceCents int64  `json:"price_cents"`
	Qty        int    `json:"qty"`
}

type PaymentSplit struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount_cents"`
	Reference   string `json:"reference,omitempty"`
}

// Sale is a read-only input to reconciliation. Sales are owned by the
// point-of-sale frontend and reach this backend through the sync endpoint;
// the reconciliation core never edits them.
//
// An order collects DepositCents at creation and its balance later, so one
// sale can surface in two different cut windows: the window it was created
// in and the window its balance settlement falls into.
type Sale struct {
	ID                   string         `json:"id"`
	CreatedAt            time.Time      `json:"created_at"`
	PaymentMethod        string         `json:"payment_method"`
	TotalCents           int64          `json:"total_cents"`
	DepositCents         int64          `json:"deposit_cents"`
	BalanceCents         int64          `json:"balance_cents"`
	TaxCents             int64          `json:"tax_cents"`
	IsOrder              bool           `json:"is_order"`
	BalancePaymentDate   *time.Time     `json:"balance_payment_date,omitempty"`
	BalancePaymentMethod string         `json:"balance_payment_method,omitempty"`
	BalancePaidCents     int64          `json:"balance_paid_cents"`
	PaymentSplits        []PaymentSplit `json:"payment_splits,omitempty"`
	Items                []SaleItem     `json:"items"`
	Status               string         `json:"status"`
}

// ItemsCostCents sums the unit cost of everything on the ticket.
func (s Sale) ItemsCostCents() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.CostCents * int64(item.Qty)
	}
	return total
}

type CreditPayment struct {
	ID          string    `json:"id"`
	CreditID    string    `json:"credit_id"`
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Note        string    `json:"note,omitempty"`
	Liquidation bool      `json:"liquidation"`
}

// CreditAccount carries the flat-rate financing terms fixed at origination.
// PaidCents must always equal the sum of Payments. Overdue is derived on
// read from the due date and never persisted.
type CreditAccount struct {
	ID                  string          `json:"id"`
	SaleID              string          `json:"sale_id"`
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	DueDate             time.Time       `json:"due_date"`
	PrincipalCents      int64           `json:"principal_cents"`
	DownPaymentCents    int64           `json:"down_payment_cents"`
	TotalCents          int64           `json:"total_cents"`
	PaidCents           int64           `json:"paid_cents"`
	MonthlyRatePercent  float64         `json:"monthly_rate_percent"`
	TermMonths          int             `json:"term_months"`
	MonthlyPaymentCents int64           `json:"monthly_payment_cents"`
	SavingsCents        int64           `json:"savings_cents"`
	Status              string          `json:"status"`
	Payments            []CreditPayment `json:"payments"`
}

// RemainingCents is the outstanding balance against the financed total.
func (c CreditAccount) RemainingCents() int64 {
	remaining := c.TotalCents - c.PaidCents
	if remaining < 0 {
		return 0
	}
	return remaining
}

type DenominationCount struct {
	ValueCents int64 `json:"value_cents"`
	Count      int   `json:"count"`
}

// WindowTotals is the per-method breakdown of everything collected inside a
// cut window. Credit-financed merchandise is reported but is not drawer
// cash; only credit payments received in cash count toward the drawer.
type WindowTotals struct {
	CashCents           int64 `json:"cash_cents"`
	CardCents           int64 `json:"card_cents"`
	TransferCents       int64 `json:"transfer_cents"`
	CreditCents         int64 `json:"credit_cents"`
	CreditPaymentsCents int64 `json:"credit_payments_cents"`
	OrderPaymentsCents  int64 `json:"order_payments_cents"`
	CashExpensesCents   int64 `json:"cash_expenses_cents"`
	CashRefundsCents    int64 `json:"cash_refunds_cents"`
	TotalCents          int64 `json:"total_cents"`
}

// NetCashExpectedCents is drawer cash after cash expenses and cash refunds.
func (t WindowTotals) NetCashExpectedCents() int64 {
	return t.CashCents - t.CashExpensesCents - t.CashRefundsCents
}

// Window is the half-open reconciliation interval (Start, End]. Start is
// the timestamp of the latest surviving cash cut, or the zero time when no
// cut exists yet.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && !t.After(w.End)
}

type CashCut struct {
	ID                string              `json:"id"`
	CutAt             time.Time           `json:"cut_at"`
	Totals            WindowTotals        `json:"totals"`
	CashExpectedCents int64               `json:"cash_expected_cents"`
	CashCountedCents  int64               `json:"cash_counted_cents"`
	DifferenceCents   int64               `json:"difference_cents"`
	Denominations     []DenominationCount `json:"denominations"`
	Notes             string              `json:"notes,omitempty"`
	CreatedBy         string              `json:"created_by"`
}

type CashCutCreateRequest struct {
	Denominations []DenominationCount `json:"denominations"`
	Notes         string              `json:"notes"`
}

type CashCutPreview struct {
	Window Window       `json:"window"`
	Totals WindowTotals `json:"totals"`
}

type CashCutResponse struct {
	CashCut CashCut `json:"cash_cut"`
}

type CashCutListResponse struct {
	Cuts []CashCut `json:"cuts"`
}

type ReverseCashCutRequest struct {
	Reason     string `json:"reason"`
	ManagerPIN string `json:"manager_pin"`
}

type Expense struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Concept     string    `json:"concept,omitempty"`
}

type Refund struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Concept     string    `json:"concept,omitempty"`
}

// ReconciliationSnapshot is one consistent read of everything window math
// consumes. Implementations populate all fields from a single storage
// snapshot so a sale recorded mid-computation is either fully visible or
// fully absent.
type ReconciliationSnapshot struct {
	TakenAt  time.Time
	Cuts     []CashCut
	Sales    []Sale
	Credits  []CreditAccount
	Expenses []Expense
	Refunds  []Refund
}

type CreditOpenRequest struct {
	SaleID             string  `json:"sale_id"`
	CustomerID         string  `json:"customer_id"`
	CustomerName       string  `json:"customer_name"`
	TotalCents         int64   `json:"total_cents"`
	DownPaymentCents   int64   `json:"down_payment_cents"`
	MonthlyRatePercent float64 `json:"monthly_rate_percent"`
	TermMonths         int     `json:"term_months"`
}

type CreditPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	Note        string `json:"note"`
}

type CreditLiquidateRequest struct {
	Method string `json:"method"`
	Note   string `json:"note"`
}

type CreditResponse struct {
	Credit CreditAccount `json:"credit"`
}

type CreditListResponse struct {
	Credits []CreditAccount `json:"credits"`
}

// MoraDetail is the late-fee accrual computed for a statement. Mora is
// always recomputed from the due date and outstanding balance; keeping a
// running mora balance would drift as "today" moves.
type MoraDetail struct {
	DaysOverdue int   `json:"days_overdue"`
	AmountCents int64 `json:"amount_cents"`
}

type PayoffDetail struct {
	DaysElapsed          int   `json:"days_elapsed"`
	InterestAccruedCents int64 `json:"interest_accrued_cents"`
	TotalDebtCents       int64 `json:"total_debt_cents"`
	RemainingToPayCents  int64 `json:"remaining_to_pay_cents"`
	SavingsCents         int64 `json:"savings_cents"`
}

type CreditStatement struct {
	Credit          CreditAccount `json:"credit"`
	EffectiveStatus string        `json:"effective_status"`
	Mora            MoraDetail    `json:"mora"`
	Payoff          *PayoffDetail `json:"payoff,omitempty"`
}

type CreditLiquidationResponse struct {
	Credit CreditAccount `json:"credit"`
	Payoff PayoffDetail  `json:"payoff"`
}

// DailyRevenueReport attributes recognized revenue and proportional cost to
// one calendar day, independently of cash-cut windows. FinanceIncomeCents
// (interest and mora collected) is tracked apart from merchandise revenue
// so a sale's lifetime recognized revenue sums exactly to its total.
type DailyRevenueReport struct {
	Date               string `json:"date"`
	RevenueCents       int64  `json:"revenue_cents"`
	CostCents          int64  `json:"cost_cents"`
	TaxCents           int64  `json:"tax_cents"`
	ProfitCents        int64  `json:"profit_cents"`
	FinanceIncomeCents int64  `json:"finance_income_cents"`
	SaleCount          int    `json:"sale_count"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

// Actor is an already-verified principal. The core never authenticates;
// privileged operations receive an Actor produced by the HTTP layer.
type Actor struct {
	Username string
	Role     string
}

type CashierCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CashierUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type AuditLog struct {
	ID            string    `json:"id"`
	ActorUsername string    `json:"actor_username"`
	ActorRole     string    `json:"actor_role"`
	Action        string    `json:"action"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}
