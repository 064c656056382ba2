package service

import (
	"context"
	"time"

	"libris-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, phone, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error) // access token, user
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, phone string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error
	ListMembers(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
	SetActive(ctx context.Context, userID int32, active bool) error
}

type BookService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	RemoveBook(ctx context.Context, id int32) error
	SearchBooks(ctx context.Context, query string, categoryID, page, pageSize int32) ([]domain.Book, int32, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	RenameCategory(ctx context.Context, id int32, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int32) error
}

// LoanService is the loan ledger: borrowing policy, the loan state machine,
// availability accounting, and the fine sweep.
type LoanService interface {
	Borrow(ctx context.Context, userID, bookID, durationDays int32) (*domain.Loan, error)
	Return(ctx context.Context, actingUserID int32, actingIsAdmin bool, loanID int32) (*domain.Loan, error)
	PayFine(ctx context.Context, actingUserID int32, actingIsAdmin bool, loanID int32) (*domain.Loan, error)
	MyLoans(ctx context.Context, userID int32) ([]domain.Loan, error)
	LoanHistory(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Loan, int32, error)
	ListLoans(ctx context.Context, status string, page, pageSize int32) ([]domain.Loan, int32, error)
	ListOverdue(ctx context.Context) ([]domain.Loan, error)
	RunFineSweep(ctx context.Context, now time.Time) (int32, error)
}

type StatsService interface {
	GetDashboard(ctx context.Context) (*domain.DashboardStats, error)
}

// EmailService is the notification sink. Callers invoke it fire-and-forget;
// a delivery failure never fails the ledger operation that triggered it.
type EmailService interface {
	SendDueSoonReminder(ctx context.Context, email, name, bookTitle, author string, dueDate time.Time) error
	SendOverdueNotice(ctx context.Context, email, name, bookTitle string, dueDate time.Time, daysOverdue int32, fineAmount string) error
}
