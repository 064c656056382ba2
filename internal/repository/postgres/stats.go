package postgres

import (
	"context"
	"database/sql"

	"libris-backend/internal/domain"
	"libris-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	query := `SELECT
	    (SELECT count(*) FROM books WHERE is_active = true),
	    (SELECT count(*) FROM users WHERE role = 'member' AND is_active = true),
	    (SELECT count(*) FROM loans WHERE status = 'active'),
	    (SELECT count(*) FROM loans WHERE status = 'overdue'),
	    (SELECT count(*) FROM loans WHERE status = 'returned'),
	    (SELECT COALESCE(SUM(fine_amount), 0) FROM loans WHERE fine_amount > 0 AND return_date IS NULL)`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalBooks,
		&stats.TotalMembers,
		&stats.ActiveLoans,
		&stats.OverdueLoans,
		&stats.ReturnedLoans,
		&stats.OutstandingFines,
	)
	if err != nil {
		return nil, err
	}

	topQuery := `SELECT b.id, b.title, count(l.id) as loan_count
	             FROM loans l JOIN books b ON l.book_id = b.id
	             GROUP BY b.id, b.title
	             ORDER BY loan_count DESC, b.title ASC
	             LIMIT 5`
	rows, err := r.db.QueryContext(ctx, topQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bc domain.BookLoanCount
		if err := rows.Scan(&bc.BookID, &bc.Title, &bc.LoanCount); err != nil {
			return nil, err
		}
		stats.TopBooks = append(stats.TopBooks, bc)
	}
	return stats, rows.Err()
}
