package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"libris-backend/internal/domain"
	"libris-backend/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

const bookColumns = `id, isbn, title, author, category_id, total_copies, available_copies, publication_year, description, is_active, created_at`

func scanBook(row interface{ Scan(...any) error }, b *domain.Book) error {
	return row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.CategoryID, &b.TotalCopies, &b.AvailableCopies, &b.PublicationYear, &b.Description, &b.IsActive, &b.CreatedAt)
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	// A new book starts with every copy available.
	b.AvailableCopies = b.TotalCopies
	query := `INSERT INTO books (isbn, title, author, category_id, total_copies, available_copies, publication_year, description, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.ISBN, b.Title, b.Author, b.CategoryID, b.TotalCopies, b.AvailableCopies, b.PublicationYear, b.Description, b.IsActive, time.Now()).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	b := &domain.Book{}
	err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = $1`, isbn), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Update never writes available_copies directly; when total_copies changes
// the availability shifts by the same delta, floored at zero, so copies out
// on loan stay accounted for.
func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books
	          SET isbn=$1, title=$2, author=$3, category_id=$4, publication_year=$5, description=$6,
	              available_copies = GREATEST(0, available_copies + ($7 - total_copies)),
	              total_copies=$7
	          WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, b.ISBN, b.Title, b.Author, b.CategoryID, b.PublicationYear, b.Description, b.TotalCopies, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookRepository) Deactivate(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE books SET is_active=false WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookRepository) Search(ctx context.Context, query string, categoryID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	sqlQuery := `SELECT ` + bookColumns + ` FROM books WHERE is_active = true`
	args := []interface{}{}
	argIdx := 1

	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR isbn = $%d)", argIdx, argIdx, argIdx+1)
		args = append(args, "%"+query+"%", query)
		argIdx += 2
	}
	if categoryID > 0 {
		sqlQuery += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, categoryID)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlQuery + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	sqlQuery += fmt.Sprintf(" ORDER BY title ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, rows.Err()
}
