package postgres

import (
	"context"
	"testing"
	"time"

	"libris-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var bookCols = []string{"id", "isbn", "title", "author", "category_id", "total_copies", "available_copies", "publication_year", "description", "is_active", "created_at"}

func TestBookRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)

	book := &domain.Book{
		ISBN:        "9780134190440",
		Title:       "The Go Programming Language",
		Author:      "Donovan & Kernighan",
		TotalCopies: 3,
		IsActive:    true,
	}

	mock.ExpectQuery("INSERT INTO books").
		WithArgs(book.ISBN, book.Title, book.Author, nil, int32(3), int32(3), nil, "", true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	err = repo.Create(context.Background(), book)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), book.ID)
	// Every copy of a freshly added book is on the shelf.
	assert.Equal(t, book.TotalCopies, book.AvailableCopies)
}

func TestBookRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		book := &domain.Book{ID: 5, ISBN: "9780134190440", Title: "The Go Programming Language", Author: "Donovan & Kernighan", TotalCopies: 4}

		mock.ExpectExec("UPDATE books").
			WithArgs(book.ISBN, book.Title, book.Author, nil, nil, "", int32(4), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, book))
	})

	t.Run("NotFound", func(t *testing.T) {
		book := &domain.Book{ID: 99, ISBN: "9780000000000", TotalCopies: 1}

		mock.ExpectExec("UPDATE books").
			WithArgs(book.ISBN, "", "", nil, nil, "", int32(1), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, book), domain.ErrNotFound)
	})
}

func TestBookRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows(bookCols).
				AddRow(5, "9780134190440", "The Go Programming Language", "Donovan & Kernighan", nil, 3, 2, 2015, "", true, time.Now()))

		book, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), book.AvailableCopies)
		assert.Nil(t, book.CategoryID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(bookCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
		WithArgs("%go%", "go").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM books WHERE is_active = true").
		WithArgs("%go%", "go", int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(bookCols).
			AddRow(5, "9780134190440", "The Go Programming Language", "Donovan & Kernighan", nil, 3, 2, 2015, "", true, time.Now()))

	books, total, err := repo.Search(context.Background(), "go", 0, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, books, 1)
}
