package repository

import (
	"context"
	"time"

	"libris-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id int32, active bool) error
	List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int32) error
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Deactivate(ctx context.Context, id int32) error
	Search(ctx context.Context, query string, categoryID int32, page, pageSize int32) ([]domain.Book, int32, error)
}

// LoanRepository owns the loan ledger. Borrow, Return and MarkOverdue are
// the only writers of books.available_copies and loan status; each runs as
// one transaction so a reader never observes a loan without the matching
// counter change.
type LoanRepository interface {
	// Borrow inserts the loan and decrements the book's availability in one
	// transaction. Returns domain.ErrConflict when no copy could be claimed
	// (counter already at zero under a concurrent borrow).
	Borrow(ctx context.Context, loan *domain.Loan) error

	// Return finalizes the loan and increments availability (capped at
	// total_copies) in one transaction. A nil fine keeps the stored amount;
	// a non-nil fine overwrites it. Returns domain.ErrAlreadyProcessed when
	// the loan was already returned.
	Return(ctx context.Context, loanID int32, returnDate time.Time, fine *decimal.Decimal) (*domain.Loan, error)

	// MarkOverdue updates fine_amount and status together for every
	// unreturned active loan past its grace period, and returns how many
	// rows changed. Safe to re-run with the same clock reading.
	MarkOverdue(ctx context.Context, now time.Time, gracePeriodDays int32, finePerDay decimal.Decimal) (int32, error)

	SettleFine(ctx context.Context, loanID int32) error

	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	CountActiveByUser(ctx context.Context, userID int32) (int32, error)
	OutstandingFines(ctx context.Context, userID int32) (decimal.Decimal, error)
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Loan, int32, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Loan, error)
	HasActiveForUser(ctx context.Context, userID int32) (bool, error)
	HasActiveForBook(ctx context.Context, bookID int32) (bool, error)
}

type StatsRepository interface {
	GetDashboard(ctx context.Context) (*domain.DashboardStats, error)
}
