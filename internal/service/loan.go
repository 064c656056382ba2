package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libris-backend/internal/domain"
	"libris-backend/internal/logger"
	"libris-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// LoanPolicy holds the externally supplied borrowing policy.
type LoanPolicy struct {
	FinePerDay      decimal.Decimal
	GracePeriodDays int32
	MaxBooksPerUser int32
}

type loanService struct {
	loanRepo repository.LoanRepository
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
	policy   LoanPolicy
	now      func() time.Time
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
	policy LoanPolicy,
) LoanService {
	return &loanService{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		userRepo: userRepo,
		policy:   policy,
		now:      time.Now,
	}
}

// Borrow runs the admission checks in order (first failure wins), then
// records the loan and claims the copy in one transaction.
func (s *loanService) Borrow(ctx context.Context, userID, bookID, durationDays int32) (*domain.Loan, error) {
	if durationDays == 0 {
		durationDays = domain.DefaultLoanDurationDays
	}
	if !domain.IsValidLoanDuration(durationDays) {
		return nil, fmt.Errorf("%w: loan duration must be 7, 14 or 21 days", domain.ErrInvalidArgument)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", domain.ErrForbidden)
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsActive {
		return nil, domain.ErrNotFound
	}

	fines, err := s.loanRepo.OutstandingFines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fines.GreaterThan(decimal.Zero) {
		return nil, domain.NewPolicyViolation(domain.RuleOutstandingFines,
			fmt.Sprintf("pay $%s before borrowing", fines.StringFixed(2)))
	}

	activeCount, err := s.loanRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if activeCount >= s.policy.MaxBooksPerUser {
		return nil, domain.NewPolicyViolation(domain.RuleLoanLimitReached,
			fmt.Sprintf("maximum %d books per member", s.policy.MaxBooksPerUser))
	}

	if book.AvailableCopies < 1 {
		return nil, domain.NewPolicyViolation(domain.RuleNoCopiesAvailable, "")
	}

	now := s.now()
	loan := &domain.Loan{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: now,
		DueDate:    now.Add(time.Duration(durationDays) * 24 * time.Hour),
		Status:     domain.LoanStatusActive,
		FineAmount: decimal.Zero,
	}

	if err := s.loanRepo.Borrow(ctx, loan); err != nil {
		// A concurrent borrower took the last copy between the availability
		// read and the conditional decrement.
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewPolicyViolation(domain.RuleNoCopiesAvailable, "")
		}
		return nil, err
	}

	logger.Info("Book borrowed", "loan_id", loan.ID, "user_id", userID, "book_id", bookID, "due_date", loan.DueDate.Format("2006-01-02"))
	return loan, nil
}

// Return finalizes a loan. The fine is recomputed from the due date at
// return time and overwrites any sweep-set amount when the return lands past
// the grace period; inside the grace period the stored amount is kept as is.
func (s *loanService) Return(ctx context.Context, actingUserID int32, actingIsAdmin bool, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != actingUserID && !actingIsAdmin {
		return nil, fmt.Errorf("%w: not your loan", domain.ErrForbidden)
	}
	if loan.Status == domain.LoanStatusReturned {
		return nil, domain.ErrAlreadyProcessed
	}

	now := s.now()
	var fine *decimal.Decimal
	if domain.PastGracePeriod(now, loan.DueDate, s.policy.GracePeriodDays) {
		f := domain.ComputeFine(now, loan.DueDate, s.policy.GracePeriodDays, s.policy.FinePerDay)
		fine = &f
	}

	returned, err := s.loanRepo.Return(ctx, loanID, now, fine)
	if err != nil {
		return nil, err
	}

	logger.Info("Book returned", "loan_id", loanID, "user_id", loan.UserID, "fine", returned.FineAmount.StringFixed(2))
	return returned, nil
}

// PayFine settles the fine to zero without changing the loan status.
func (s *loanService) PayFine(ctx context.Context, actingUserID int32, actingIsAdmin bool, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != actingUserID && !actingIsAdmin {
		return nil, fmt.Errorf("%w: not your loan", domain.ErrForbidden)
	}
	if loan.FineAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: no fine to pay", domain.ErrInvalidArgument)
	}

	if err := s.loanRepo.SettleFine(ctx, loanID); err != nil {
		return nil, err
	}

	logger.Info("Fine settled", "loan_id", loanID, "amount", loan.FineAmount.StringFixed(2))
	loan.FineAmount = decimal.Zero
	return loan, nil
}

func (s *loanService) MyLoans(ctx context.Context, userID int32) ([]domain.Loan, error) {
	loans, _, err := s.loanRepo.ListByUser(ctx, userID, string(domain.LoanStatusActive), 1, 100)
	return loans, err
}

func (s *loanService) LoanHistory(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	return s.loanRepo.ListByUser(ctx, userID, "", page, pageSize)
}

func (s *loanService) ListLoans(ctx context.Context, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	if status != "" {
		switch domain.LoanStatus(status) {
		case domain.LoanStatusActive, domain.LoanStatusOverdue, domain.LoanStatusReturned:
		default:
			return nil, 0, fmt.Errorf("%w: unknown loan status %q", domain.ErrInvalidArgument, status)
		}
	}
	return s.loanRepo.ListAll(ctx, status, page, pageSize)
}

func (s *loanService) ListOverdue(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, s.now())
}

// RunFineSweep recomputes overdue status and fines for all unreturned loans.
// Idempotent for a fixed now; scheduling belongs to the caller.
func (s *loanService) RunFineSweep(ctx context.Context, now time.Time) (int32, error) {
	count, err := s.loanRepo.MarkOverdue(ctx, now, s.policy.GracePeriodDays, s.policy.FinePerDay)
	if err != nil {
		return 0, fmt.Errorf("fine sweep failed: %w", err)
	}
	logger.Info("Fine sweep completed", "loans_updated", count)
	return count, nil
}
