package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"cortecaja/backend/internal/domain"
	"cortecaja/backend/internal/store"
	"cortecaja/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot reads every reconciliation input inside one repeatable-read
// transaction, so window math never sees a sale without its cut history.
func (s *Store) Snapshot(ctx context.Context) (*domain.ReconciliationSnapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	snap := &domain.ReconciliationSnapshot{TakenAt: time.Now().UTC()}

	snap.Cuts, err = scanCashCuts(tx.QueryContext(ctx, `
		SELECT id, cut_at, totals, cash_expected_cents, cash_counted_cents,
			difference_cents, denominations, notes, created_by
		FROM cash_cuts
		ORDER BY cut_at ASC
	`))
	if err != nil {
		return nil, err
	}

	snap.Sales, err = scanSales(tx.QueryContext(ctx, `
		SELECT id, created_at, payment_method, total_cents, deposit_cents,
			balance_cents, tax_cents, is_order, balance_payment_date,
			balance_payment_method, balance_paid_cents, payment_splits, items, status
		FROM sales
		ORDER BY created_at ASC
	`))
	if err != nil {
		return nil, err
	}

	snap.Credits, err = scanCredits(ctx, tx, "")
	if err != nil {
		return nil, err
	}

	expenseRows, err := tx.QueryContext(ctx, `
		SELECT id, date, amount_cents, method, COALESCE(concept,'')
		FROM expenses
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	for expenseRows.Next() {
		var e domain.Expense
		if err := expenseRows.Scan(&e.ID, &e.Date, &e.AmountCents, &e.Method, &e.Concept); err != nil {
			_ = expenseRows.Close()
			return nil, err
		}
		e.Date = e.Date.UTC()
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := expenseRows.Err(); err != nil {
		_ = expenseRows.Close()
		return nil, err
	}
	_ = expenseRows.Close()

	refundRows, err := tx.QueryContext(ctx, `
		SELECT id, date, amount_cents, method, COALESCE(concept,'')
		FROM refunds
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	for refundRows.Next() {
		var r domain.Refund
		if err := refundRows.Scan(&r.ID, &r.Date, &r.AmountCents, &r.Method, &r.Concept); err != nil {
			_ = refundRows.Close()
			return nil, err
		}
		r.Date = r.Date.UTC()
		snap.Refunds = append(snap.Refunds, r)
	}
	if err := refundRows.Err(); err != nil {
		_ = refundRows.Close()
		return nil, err
	}
	_ = refundRows.Close()

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) CreateCashCut(ctx context.Context, cut domain.CashCut) (*domain.CashCut, error) {
	if cut.ID == "" {
		cut.ID = xid.New("cut")
	}
	if cut.CutAt.IsZero() {
		cut.CutAt = time.Now().UTC()
	}

	totalsJSON, err := json.Marshal(cut.Totals)
	if err != nil {
		return nil, err
	}
	denomsJSON, err := json.Marshal(cut.Denominations)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cash_cuts (
			id, cut_at, totals, cash_expected_cents, cash_counted_cents,
			difference_cents, denominations, notes, created_by
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, cut.ID, cut.CutAt, totalsJSON, cut.CashExpectedCents, cut.CashCountedCents,
		cut.DifferenceCents, denomsJSON, cut.Notes, cut.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists
		}
		return nil, err
	}

	saved := cut
	return &saved, nil
}

func (s *Store) GetCashCut(ctx context.Context, id string) (*domain.CashCut, error) {
	cuts, err := scanCashCuts(s.db.QueryContext(ctx, `
		SELECT id, cut_at, totals, cash_expected_cents, cash_counted_cents,
			difference_cents, denominations, notes, created_by
		FROM cash_cuts
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}
	if len(cuts) == 0 {
		return nil, store.ErrNotFound
	}
	cut := cuts[0]
	return &cut, nil
}

func (s *Store) ListCashCuts(ctx context.Context, from, to time.Time, limit int) ([]domain.CashCut, error) {
	if limit < 1 {
		limit = 100
	}

	query := `
		SELECT id, cut_at, totals, cash_expected_cents, cash_counted_cents,
			difference_cents, denominations, notes, created_by
		FROM cash_cuts
	`
	args := make([]any, 0, 3)
	if !from.IsZero() || !to.IsZero() {
		query += ` WHERE cut_at >= $1 AND cut_at < $2`
		args = append(args, from, to)
		query += ` ORDER BY cut_at DESC LIMIT $3`
	} else {
		query += ` ORDER BY cut_at DESC LIMIT $1`
	}
	args = append(args, limit)

	return scanCashCuts(s.db.QueryContext(ctx, query, args...))
}

func (s *Store) DeleteCashCut(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cash_cuts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateCreditAccount(ctx context.Context, credit domain.CreditAccount) (*domain.CreditAccount, error) {
	if credit.ID == "" {
		credit.ID = xid.New("cr")
	}
	if credit.CreatedAt.IsZero() {
		credit.CreatedAt = time.Now().UTC()
	}
	if credit.Status == "" {
		credit.Status = domain.CreditStatusPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_accounts (
			id, sale_id, customer_id, customer_name, created_at, due_date,
			principal_cents, down_payment_cents, total_cents, paid_cents,
			monthly_rate_percent, term_months, monthly_payment_cents,
			savings_cents, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, credit.ID, nullIfEmpty(credit.SaleID), credit.CustomerID, credit.CustomerName,
		credit.CreatedAt, credit.DueDate, credit.PrincipalCents, credit.DownPaymentCents,
		credit.TotalCents, credit.PaidCents, credit.MonthlyRatePercent, credit.TermMonths,
		credit.MonthlyPaymentCents, credit.SavingsCents, credit.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists
		}
		return nil, err
	}

	saved := credit
	if saved.Payments == nil {
		saved.Payments = []domain.CreditPayment{}
	}
	return &saved, nil
}

func (s *Store) GetCreditAccount(ctx context.Context, id string) (*domain.CreditAccount, error) {
	credits, err := scanCredits(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if len(credits) == 0 {
		return nil, store.ErrNotFound
	}
	credit := credits[0]
	return &credit, nil
}

func (s *Store) ListCreditAccounts(ctx context.Context, status string, limit int) ([]domain.CreditAccount, error) {
	if limit < 1 {
		limit = 200
	}

	credits, err := scanCreditsByStatus(ctx, s.db, status, limit)
	if err != nil {
		return nil, err
	}
	return credits, nil
}

func (s *Store) AppendCreditPayment(ctx context.Context, creditID string, payment domain.CreditPayment, paidCents, savingsCents int64, status string) (*domain.CreditAccount, error) {
	if payment.ID == "" {
		payment.ID = xid.New("pay")
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}
	payment.CreditID = creditID

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM credit_accounts WHERE id = $1 FOR UPDATE
	`, creditID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO credit_payments (id, credit_id, paid_at, amount_cents, method, note, liquidation)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, payment.ID, creditID, payment.Date, payment.AmountCents, payment.Method,
		payment.Note, payment.Liquidation)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE credit_accounts
		SET paid_cents = $2, savings_cents = $3, status = $4
		WHERE id = $1
	`, creditID, paidCents, savingsCents, status)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetCreditAccount(ctx, creditID)
}

func (s *Store) UpsertSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if sale.ID == "" {
		sale.ID = xid.New("sale")
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	if sale.Status == "" {
		sale.Status = domain.SaleStatusActive
	}

	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return nil, err
	}
	splitsJSON, err := json.Marshal(sale.PaymentSplits)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sales (
			id, created_at, payment_method, total_cents, deposit_cents,
			balance_cents, tax_cents, is_order, balance_payment_date,
			balance_payment_method, balance_paid_cents, payment_splits, items, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id)
		DO UPDATE SET
			payment_method = EXCLUDED.payment_method,
			total_cents = EXCLUDED.total_cents,
			deposit_cents = EXCLUDED.deposit_cents,
			balance_cents = EXCLUDED.balance_cents,
			tax_cents = EXCLUDED.tax_cents,
			is_order = EXCLUDED.is_order,
			balance_payment_date = EXCLUDED.balance_payment_date,
			balance_payment_method = EXCLUDED.balance_payment_method,
			balance_paid_cents = EXCLUDED.balance_paid_cents,
			payment_splits = EXCLUDED.payment_splits,
			items = EXCLUDED.items,
			status = EXCLUDED.status
	`, sale.ID, sale.CreatedAt, sale.PaymentMethod, sale.TotalCents, sale.DepositCents,
		sale.BalanceCents, sale.TaxCents, sale.IsOrder, nullTime(sale.BalancePaymentDate),
		sale.BalancePaymentMethod, sale.BalancePaidCents, splitsJSON, itemsJSON, sale.Status)
	if err != nil {
		return nil, err
	}

	saved := sale
	return &saved, nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	sales, err := scanSales(s.db.QueryContext(ctx, `
		SELECT id, created_at, payment_method, total_cents, deposit_cents,
			balance_cents, tax_cents, is_order, balance_payment_date,
			balance_payment_method, balance_paid_cents, payment_splits, items, status
		FROM sales
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, store.ErrNotFound
	}
	sale := sales[0]
	return &sale, nil
}

func (s *Store) CreateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	if expense.ID == "" {
		expense.ID = xid.New("exp")
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, date, amount_cents, method, concept)
		VALUES ($1,$2,$3,$4,$5)
	`, expense.ID, expense.Date, expense.AmountCents, expense.Method, nullIfEmpty(expense.Concept))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists
		}
		return nil, err
	}

	saved := expense
	return &saved, nil
}

func (s *Store) CreateRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error) {
	if refund.ID == "" {
		refund.ID = xid.New("ref")
	}
	if refund.Date.IsZero() {
		refund.Date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refunds (id, date, amount_cents, method, concept)
		VALUES ($1,$2,$3,$4,$5)
	`, refund.ID, refund.Date, refund.AmountCents, refund.Method, nullIfEmpty(refund.Concept))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists
		}
		return nil, err
	}

	saved := refund
	return &saved, nil
}

func (s *Store) CreateAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, entry.ID, entry.ActorUsername, entry.ActorRole, entry.Action, entry.EntityType,
		entry.EntityID, entry.Detail, entry.CreatedAt)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLog, error) {
	if limit < 1 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		FROM audit_logs
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0, limit)
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(&entry.ID, &entry.ActorUsername, &entry.ActorRole, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	if user.Username == "" || user.Password == "" {
		return store.ErrInvalidRecord
	}
	if user.Role == "" {
		user.Role = "cashier"
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (username, password, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM app_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.Username, &user.Password, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	if username == "" || password == "" {
		return store.ErrInvalidRecord
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// querier covers both *sql.DB and *sql.Tx so snapshot reads and standalone
// reads share scan helpers.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanCashCuts(rows *sql.Rows, err error) ([]domain.CashCut, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cuts := make([]domain.CashCut, 0, 32)
	for rows.Next() {
		var cut domain.CashCut
		var totalsRaw []byte
		var denomsRaw []byte
		if err := rows.Scan(&cut.ID, &cut.CutAt, &totalsRaw, &cut.CashExpectedCents,
			&cut.CashCountedCents, &cut.DifferenceCents, &denomsRaw, &cut.Notes, &cut.CreatedBy); err != nil {
			return nil, err
		}
		cut.CutAt = cut.CutAt.UTC()
		if len(totalsRaw) > 0 {
			if err := json.Unmarshal(totalsRaw, &cut.Totals); err != nil {
				return nil, err
			}
		}
		if len(denomsRaw) > 0 {
			if err := json.Unmarshal(denomsRaw, &cut.Denominations); err != nil {
				return nil, err
			}
		}
		cuts = append(cuts, cut)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cuts, nil
}

func scanSales(rows *sql.Rows, err error) ([]domain.Sale, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0, 128)
	for rows.Next() {
		var sale domain.Sale
		var balanceDate sql.NullTime
		var balanceMethod sql.NullString
		var splitsRaw []byte
		var itemsRaw []byte
		if err := rows.Scan(&sale.ID, &sale.CreatedAt, &sale.PaymentMethod, &sale.TotalCents,
			&sale.DepositCents, &sale.BalanceCents, &sale.TaxCents, &sale.IsOrder,
			&balanceDate, &balanceMethod, &sale.BalancePaidCents, &splitsRaw, &itemsRaw, &sale.Status); err != nil {
			return nil, err
		}
		sale.CreatedAt = sale.CreatedAt.UTC()
		if balanceDate.Valid {
			at := balanceDate.Time.UTC()
			sale.BalancePaymentDate = &at
		}
		if balanceMethod.Valid {
			sale.BalancePaymentMethod = balanceMethod.String
		}
		if len(splitsRaw) > 0 {
			if err := json.Unmarshal(splitsRaw, &sale.PaymentSplits); err != nil {
				return nil, err
			}
		}
		if len(itemsRaw) > 0 {
			if err := json.Unmarshal(itemsRaw, &sale.Items); err != nil {
				return nil, err
			}
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// scanCredits loads credit accounts and their payments. When id is non-empty
// only that account is loaded.
func scanCredits(ctx context.Context, q querier, id string) ([]domain.CreditAccount, error) {
	query := `
		SELECT id, COALESCE(sale_id,''), customer_id, COALESCE(customer_name,''),
			created_at, due_date, principal_cents, down_payment_cents, total_cents,
			paid_cents, monthly_rate_percent, term_months, monthly_payment_cents,
			savings_cents, status
		FROM credit_accounts
	`
	args := make([]any, 0, 1)
	if id != "" {
		query += ` WHERE id = $1`
		args = append(args, id)
	}
	query += ` ORDER BY created_at ASC`

	return loadCredits(ctx, q, query, args)
}

func scanCreditsByStatus(ctx context.Context, q querier, status string, limit int) ([]domain.CreditAccount, error) {
	query := `
		SELECT id, COALESCE(sale_id,''), customer_id, COALESCE(customer_name,''),
			created_at, due_date, principal_cents, down_payment_cents, total_cents,
			paid_cents, monthly_rate_percent, term_months, monthly_payment_cents,
			savings_cents, status
		FROM credit_accounts
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at ASC
		LIMIT $2
	`
	return loadCredits(ctx, q, query, []any{status, limit})
}

func loadCredits(ctx context.Context, q querier, query string, args []any) ([]domain.CreditAccount, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	credits := make([]domain.CreditAccount, 0, 32)
	ids := make([]string, 0, 32)
	for rows.Next() {
		var credit domain.CreditAccount
		if err := rows.Scan(&credit.ID, &credit.SaleID, &credit.CustomerID, &credit.CustomerName,
			&credit.CreatedAt, &credit.DueDate, &credit.PrincipalCents, &credit.DownPaymentCents,
			&credit.TotalCents, &credit.PaidCents, &credit.MonthlyRatePercent, &credit.TermMonths,
			&credit.MonthlyPaymentCents, &credit.SavingsCents, &credit.Status); err != nil {
			_ = rows.Close()
			return nil, err
		}
		credit.CreatedAt = credit.CreatedAt.UTC()
		credit.DueDate = credit.DueDate.UTC()
		credit.Payments = []domain.CreditPayment{}
		credits = append(credits, credit)
		ids = append(ids, credit.ID)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if len(ids) == 0 {
		return credits, nil
	}

	payRows, err := q.QueryContext(ctx, `
		SELECT id, credit_id, paid_at, amount_cents, method, COALESCE(note,''), liquidation
		FROM credit_payments
		WHERE credit_id = ANY($1)
		ORDER BY paid_at ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer payRows.Close()

	paymentMap := make(map[string][]domain.CreditPayment, len(ids))
	for payRows.Next() {
		var payment domain.CreditPayment
		if err := payRows.Scan(&payment.ID, &payment.CreditID, &payment.Date,
			&payment.AmountCents, &payment.Method, &payment.Note, &payment.Liquidation); err != nil {
			return nil, err
		}
		payment.Date = payment.Date.UTC()
		paymentMap[payment.CreditID] = append(paymentMap[payment.CreditID], payment)
	}
	if err := payRows.Err(); err != nil {
		return nil, err
	}

	for i := range credits {
		if payments, ok := paymentMap[credits[i].ID]; ok {
			credits[i].Payments = payments
		}
	}
	return credits, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}

func nullTime(val *time.Time) any {
	if val == nil {
		return nil
	}
	return *val
}
