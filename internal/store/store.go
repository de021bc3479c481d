package store

import (
	"context"
	"errors"
	"time"

	"cortecaja/backend/internal/domain"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRecord  = errors.New("invalid record")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNothingCounted = errors.New("nothing counted in window")
)

// Repository is the persistence collaborator for the reconciliation core.
// Snapshot must be internally consistent: all slices come from the same
// storage view. Money-mutating methods are atomic per call and are never
// retried by the store; retry policy belongs to the caller.
type Repository interface {
	// Snapshot returns every record the window and revenue math consumes,
	// read from a single consistent view of storage.
	Snapshot(ctx context.Context) (*domain.ReconciliationSnapshot, error)

	CreateCashCut(ctx context.Context, cut domain.CashCut) (*domain.CashCut, error)
	GetCashCut(ctx context.Context, id string) (*domain.CashCut, error)
	ListCashCuts(ctx context.Context, from, to time.Time, limit int) ([]domain.CashCut, error)
	DeleteCashCut(ctx context.Context, id string) error

	CreateCreditAccount(ctx context.Context, credit domain.CreditAccount) (*domain.CreditAccount, error)
	GetCreditAccount(ctx context.Context, id string) (*domain.CreditAccount, error)
	ListCreditAccounts(ctx context.Context, status string, limit int) ([]domain.CreditAccount, error)
	// AppendCreditPayment records the payment and updates the account's
	// paid total, savings, and status in one atomic write.
	AppendCreditPayment(ctx context.Context, creditID string, payment domain.CreditPayment, paidCents, savingsCents int64, status string) (*domain.CreditAccount, error)

	UpsertSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	CreateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	CreateRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error)

	CreateAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLog, error)

	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
