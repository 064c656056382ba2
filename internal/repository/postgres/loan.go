package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"libris-backend/internal/domain"
	"libris-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, book_id, borrow_date, due_date, return_date, status, fine_amount`

func scanLoan(row interface{ Scan(...any) error }, l *domain.Loan) error {
	return row.Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.FineAmount)
}

// Borrow claims one copy and records the loan in a single transaction. The
// conditional decrement is the guard against two borrowers taking the last
// copy: whichever transaction commits second matches zero rows.
func (r *loanRepository) Borrow(ctx context.Context, loan *domain.Loan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies - 1 WHERE id = $1 AND available_copies >= 1 AND is_active = true`,
		loan.BookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConflict
	}

	query := `INSERT INTO loans (user_id, book_id, borrow_date, due_date, status, fine_amount)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, query, loan.UserID, loan.BookID, loan.BorrowDate, loan.DueDate, loan.Status, loan.FineAmount).Scan(&loan.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Return finalizes the loan and frees the copy in one transaction. The
// status guard in the UPDATE is what makes a concurrent double return lose:
// the second transaction matches zero rows and the counter is incremented
// exactly once. The increment is capped at total_copies so even a replayed
// return cannot push availability above the shelf count.
func (r *loanRepository) Return(ctx context.Context, loanID int32, returnDate time.Time, fine *decimal.Decimal) (*domain.Loan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var fineArg interface{}
	if fine != nil {
		fineArg = *fine
	}

	loan := &domain.Loan{}
	query := `UPDATE loans SET return_date = $1, status = 'returned', fine_amount = COALESCE($2::numeric, fine_amount)
	          WHERE id = $3 AND status <> 'returned'
	          RETURNING ` + loanColumns
	err = scanLoan(tx.QueryRowContext(ctx, query, returnDate, fineArg, loanID), loan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAlreadyProcessed
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE books SET available_copies = LEAST(total_copies, available_copies + 1) WHERE id = $1`,
		loan.BookID)
	if err != nil {
		return nil, err
	}

	return loan, tx.Commit()
}

// MarkOverdue recomputes fines for every unreturned loan past its grace
// period. Fine and status change in the same statement, so a loan can never
// carry an accrued fine while still reading as plain active. Loans already
// overdue are included so a later run overwrites their fine from the same
// day arithmetic.
func (r *loanRepository) MarkOverdue(ctx context.Context, now time.Time, gracePeriodDays int32, finePerDay decimal.Decimal) (int32, error) {
	query := `UPDATE loans
	          SET status = 'overdue',
	              fine_amount = ROUND(((FLOOR(EXTRACT(EPOCH FROM ($1::timestamp - due_date)) / 86400) - $2) * $3::numeric)::numeric, 2)
	          WHERE status IN ('active', 'overdue')
	            AND due_date < $1::timestamp - make_interval(days => $2)
	            AND FLOOR(EXTRACT(EPOCH FROM ($1::timestamp - due_date)) / 86400) - $2 > 0`
	res, err := r.db.ExecContext(ctx, query, now, gracePeriodDays, finePerDay)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int32(n), err
}

// SettleFine zeroes the fine without touching the loan status.
func (r *loanRepository) SettleFine(ctx context.Context, loanID int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE loans SET fine_amount = 0 WHERE id = $1`, loanID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	loan := &domain.Loan{}
	err := scanLoan(r.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id), loan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *loanRepository) CountActiveByUser(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM loans WHERE user_id = $1 AND status = 'active'`, userID).Scan(&count)
	return count, err
}

// OutstandingFines sums unpaid fines on unreturned loans only; a fine on a
// returned loan does not block further borrowing.
func (r *loanRepository) OutstandingFines(ctx context.Context, userID int32) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(fine_amount), 0) FROM loans WHERE user_id = $1 AND fine_amount > 0 AND return_date IS NULL`,
		userID).Scan(&total)
	return total, err
}

func (r *loanRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	sqlQuery := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		sqlQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.listLoans(ctx, sqlQuery, args, argIdx, page, pageSize)
}

func (r *loanRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	sqlQuery := `SELECT ` + loanColumns + ` FROM loans WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		sqlQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.listLoans(ctx, sqlQuery, args, argIdx, page, pageSize)
}

func (r *loanRepository) listLoans(ctx context.Context, sqlQuery string, args []interface{}, argIdx int, page, pageSize int32) ([]domain.Loan, int32, error) {
	var count int32
	countSql := "SELECT count(*) FROM (" + sqlQuery + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	sqlQuery += fmt.Sprintf(" ORDER BY borrow_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, 0, err
		}
		loans = append(loans, l)
	}
	return loans, count, rows.Err()
}

func (r *loanRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE status IN ('active', 'overdue') AND due_date < $1
	          ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) HasActiveForUser(ctx context.Context, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE user_id = $1 AND status IN ('active', 'overdue'))`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists)
	return exists, err
}

func (r *loanRepository) HasActiveForBook(ctx context.Context, bookID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE book_id = $1 AND status IN ('active', 'overdue'))`
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(&exists)
	return exists, err
}
