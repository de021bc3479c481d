package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cortecaja/backend/internal/domain"
	"cortecaja/backend/internal/store"
	"cortecaja/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	salesByID       map[string]domain.Sale
	creditsByID     map[string]domain.CreditAccount
	cutsByID        map[string]domain.CashCut
	expensesByID    map[string]domain.Expense
	refundsByID     map[string]domain.Refund
	auditLogs       []domain.AuditLog
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials come from SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD; if
// unset, hardcoded dev defaults are used with a warning. These credentials
// are never used in production (the backend uses PostgreSQL when
// DATABASE_URL is set).
func seedUsers() map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	cashierPwd := envOr("SEED_CASHIER_PASSWORD", "cashier123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_CASHIER_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, "admin"},
		{"cashier", cashierPwd, "cashier"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// New returns an empty in-memory store. Service tests build their own
// fixtures on top of it.
func New() *Store {
	return &Store{
		salesByID:       make(map[string]domain.Sale),
		creditsByID:     make(map[string]domain.CreditAccount),
		cutsByID:        make(map[string]domain.CashCut),
		expensesByID:    make(map[string]domain.Expense),
		refundsByID:     make(map[string]domain.Refund),
		auditLogs:       make([]domain.AuditLog, 0, 128),
		usersByUsername: make(map[string]domain.UserAccount),
	}
}

// NewSeeded returns a store preloaded with dev users and a small set of
// demo sales so the reconciliation endpoints return data out of the box.
func NewSeeded() *Store {
	s := New()
	s.usersByUsername = seedUsers()

	now := time.Now().UTC()
	demo := []domain.Sale{
		{
			ID:            "sale-demo-1",
			CreatedAt:     now.Add(-4 * time.Hour),
			PaymentMethod: domain.PayCash,
			TotalCents:    45000,
			TaxCents:      6207,
			Items:         []domain.SaleItem{{CostCents: 21000, PriceCents: 45000, Qty: 1}},
			Status:        domain.SaleStatusActive,
		},
		{
			ID:            "sale-demo-2",
			CreatedAt:     now.Add(-3 * time.Hour),
			PaymentMethod: domain.PayCard,
			TotalCents:    128000,
			TaxCents:      17655,
			Items:         []domain.SaleItem{{CostCents: 64000, PriceCents: 128000, Qty: 1}},
			Status:        domain.SaleStatusActive,
		},
		{
			ID:            "sale-demo-3",
			CreatedAt:     now.Add(-2 * time.Hour),
			PaymentMethod: domain.PayCash,
			TotalCents:    90000,
			DepositCents:  30000,
			BalanceCents:  60000,
			TaxCents:      12414,
			IsOrder:       true,
			Items:         []domain.SaleItem{{CostCents: 40000, PriceCents: 90000, Qty: 1}},
			Status:        domain.SaleStatusActive,
		},
	}
	for _, sale := range demo {
		s.salesByID[sale.ID] = cloneSale(sale)
	}
	return s
}

func (s *Store) Snapshot(_ context.Context) (*domain.ReconciliationSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &domain.ReconciliationSnapshot{
		TakenAt:  time.Now().UTC(),
		Cuts:     make([]domain.CashCut, 0, len(s.cutsByID)),
		Sales:    make([]domain.Sale, 0, len(s.salesByID)),
		Credits:  make([]domain.CreditAccount, 0, len(s.creditsByID)),
		Expenses: make([]domain.Expense, 0, len(s.expensesByID)),
		Refunds:  make([]domain.Refund, 0, len(s.refundsByID)),
	}
	for _, cut := range s.cutsByID {
		snap.Cuts = append(snap.Cuts, cloneCashCut(cut))
	}
	for _, sale := range s.salesByID {
		snap.Sales = append(snap.Sales, cloneSale(sale))
	}
	for _, credit := range s.creditsByID {
		snap.Credits = append(snap.Credits, cloneCredit(credit))
	}
	for _, expense := range s.expensesByID {
		snap.Expenses = append(snap.Expenses, expense)
	}
	for _, refund := range s.refundsByID {
		snap.Refunds = append(snap.Refunds, refund)
	}

	slices.SortFunc(snap.Cuts, func(a, b domain.CashCut) int {
		if a.CutAt.Equal(b.CutAt) {
			return cmpString(a.ID, b.ID)
		}
		if a.CutAt.Before(b.CutAt) {
			return -1
		}
		return 1
	})
	slices.SortFunc(snap.Sales, func(a, b domain.Sale) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(a.ID, b.ID)
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	})
	return snap, nil
}

func (s *Store) CreateCashCut(_ context.Context, cut domain.CashCut) (*domain.CashCut, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cut.ID == "" {
		cut.ID = xid.New("cut")
	}
	if cut.CutAt.IsZero() {
		cut.CutAt = time.Now().UTC()
	}
	if _, exists := s.cutsByID[cut.ID]; exists {
		return nil, store.ErrAlreadyExists
	}

	s.cutsByID[cut.ID] = cloneCashCut(cut)
	created := cloneCashCut(cut)
	return &created, nil
}

func (s *Store) GetCashCut(_ context.Context, id string) (*domain.CashCut, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cut, exists := s.cutsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	found := cloneCashCut(cut)
	return &found, nil
}

func (s *Store) ListCashCuts(_ context.Context, from, to time.Time, limit int) ([]domain.CashCut, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.CashCut, 0, len(s.cutsByID))
	for _, cut := range s.cutsByID {
		if !from.IsZero() && cut.CutAt.Before(from) {
			continue
		}
		if !to.IsZero() && cut.CutAt.After(to) {
			continue
		}
		result = append(result, cloneCashCut(cut))
	}
	slices.SortFunc(result, func(a, b domain.CashCut) int {
		if a.CutAt.Equal(b.CutAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CutAt.After(b.CutAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) DeleteCashCut(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cutsByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.cutsByID, id)
	return nil
}

func (s *Store) CreateCreditAccount(_ context.Context, credit domain.CreditAccount) (*domain.CreditAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if credit.ID == "" {
		credit.ID = xid.New("cr")
	}
	if credit.CreatedAt.IsZero() {
		credit.CreatedAt = time.Now().UTC()
	}
	if credit.Status == "" {
		credit.Status = domain.CreditStatusPending
	}
	if _, exists := s.creditsByID[credit.ID]; exists {
		return nil, store.ErrAlreadyExists
	}

	s.creditsByID[credit.ID] = cloneCredit(credit)
	created := cloneCredit(credit)
	return &created, nil
}

func (s *Store) GetCreditAccount(_ context.Context, id string) (*domain.CreditAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	credit, exists := s.creditsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	found := cloneCredit(credit)
	return &found, nil
}

func (s *Store) ListCreditAccounts(_ context.Context, status string, limit int) ([]domain.CreditAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status = strings.ToLower(strings.TrimSpace(status))
	result := make([]domain.CreditAccount, 0, len(s.creditsByID))
	for _, credit := range s.creditsByID {
		if status != "" && credit.Status != status {
			continue
		}
		result = append(result, cloneCredit(credit))
	}
	slices.SortFunc(result, func(a, b domain.CreditAccount) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) AppendCreditPayment(_ context.Context, creditID string, payment domain.CreditPayment, paidCents, savingsCents int64, status string) (*domain.CreditAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	credit, exists := s.creditsByID[creditID]
	if !exists {
		return nil, store.ErrNotFound
	}
	if payment.AmountCents < 1 {
		return nil, store.ErrInvalidRecord
	}
	if payment.ID == "" {
		payment.ID = xid.New("pay")
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}
	payment.CreditID = creditID

	credit.Payments = append(credit.Payments, payment)
	credit.PaidCents = paidCents
	credit.SavingsCents = savingsCents
	credit.Status = status
	s.creditsByID[creditID] = credit

	updated := cloneCredit(credit)
	return &updated, nil
}

func (s *Store) UpsertSale(_ context.Context, sale domain.Sale) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sale.ID == "" {
		sale.ID = xid.New("sale")
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	if sale.Status == "" {
		sale.Status = domain.SaleStatusActive
	}
	if sale.TotalCents < 0 || sale.DepositCents < 0 || sale.BalanceCents < 0 {
		return nil, store.ErrInvalidRecord
	}

	s.salesByID[sale.ID] = cloneSale(sale)
	saved := cloneSale(sale)
	return &saved, nil
}

func (s *Store) GetSale(_ context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, exists := s.salesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	found := cloneSale(sale)
	return &found, nil
}

func (s *Store) CreateExpense(_ context.Context, expense domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense.AmountCents < 1 {
		return nil, store.ErrInvalidRecord
	}
	if expense.ID == "" {
		expense.ID = xid.New("exp")
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	s.expensesByID[expense.ID] = expense
	created := expense
	return &created, nil
}

func (s *Store) CreateRefund(_ context.Context, refund domain.Refund) (*domain.Refund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if refund.AmountCents < 1 {
		return nil, store.ErrInvalidRecord
	}
	if refund.ID == "" {
		refund.ID = xid.New("ref")
	}
	if refund.Date.IsZero() {
		refund.Date = time.Now().UTC()
	}
	s.refundsByID[refund.ID] = refund
	created := refund
	return &created, nil
}

func (s *Store) CreateAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, from, to time.Time, limit int) ([]domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.AuditLog, 0, 64)
	for _, entry := range s.auditLogs {
		if !from.IsZero() && entry.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !entry.CreatedAt.Before(to) {
			continue
		}
		result = append(result, entry)
	}

	slices.SortFunc(result, func(a, b domain.AuditLog) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(strings.TrimSpace(user.Username))
	if username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidRecord
	}
	if _, exists := s.usersByUsername[username]; exists {
		return store.ErrAlreadyExists
	}
	user.Username = username
	if user.Role == "" {
		user.Role = "cashier"
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Active = true
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, user := range s.usersByUsername {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return cmpString(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidRecord
	}
	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}

func cmpString(a string, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func cloneSale(src domain.Sale) domain.Sale {
	dup := src
	items := make([]domain.SaleItem, len(src.Items))
	copy(items, src.Items)
	dup.Items = items
	splits := make([]domain.PaymentSplit, len(src.PaymentSplits))
	copy(splits, src.PaymentSplits)
	dup.PaymentSplits = splits
	if src.BalancePaymentDate != nil {
		paidAt := src.BalancePaymentDate.UTC()
		dup.BalancePaymentDate = &paidAt
	}
	return dup
}

func cloneCredit(src domain.CreditAccount) domain.CreditAccount {
	dup := src
	payments := make([]domain.CreditPayment, len(src.Payments))
	copy(payments, src.Payments)
	dup.Payments = payments
	return dup
}

func cloneCashCut(src domain.CashCut) domain.CashCut {
	dup := src
	denoms := make([]domain.DenominationCount, len(src.Denominations))
	copy(denoms, src.Denominations)
	dup.Denominations = denoms
	return dup
}
