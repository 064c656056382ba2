package service

import (
	"context"
	"testing"

	"libris-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddBook(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		svc := NewBookService(bookRepo, new(MockLoanRepo))

		bookRepo.On("GetByISBN", mock.Anything, "9780134190440").Return(nil, domain.ErrNotFound)
		bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Book")).Return(nil)

		book := &domain.Book{ISBN: "978-0-13-419044-0", Title: "The Go Programming Language", Author: "Donovan & Kernighan", TotalCopies: 3}
		require.NoError(t, svc.AddBook(context.Background(), book))
		// Hyphens are stripped before storage and lookup.
		assert.Equal(t, "9780134190440", book.ISBN)
		assert.True(t, book.IsActive)
	})

	t.Run("BadISBN", func(t *testing.T) {
		svc := NewBookService(new(MockBookRepo), new(MockLoanRepo))

		book := &domain.Book{ISBN: "12345", Title: "X", Author: "Y", TotalCopies: 1}
		assert.ErrorIs(t, svc.AddBook(context.Background(), book), domain.ErrInvalidArgument)
	})

	t.Run("DuplicateISBN", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		svc := NewBookService(bookRepo, new(MockLoanRepo))

		bookRepo.On("GetByISBN", mock.Anything, "9780134190440").Return(availableBook(10), nil)

		book := &domain.Book{ISBN: "9780134190440", Title: "X", Author: "Y", TotalCopies: 1}
		assert.ErrorIs(t, svc.AddBook(context.Background(), book), domain.ErrConflict)
	})

	t.Run("NoCopies", func(t *testing.T) {
		svc := NewBookService(new(MockBookRepo), new(MockLoanRepo))

		book := &domain.Book{ISBN: "9780134190440", Title: "X", Author: "Y", TotalCopies: 0}
		assert.ErrorIs(t, svc.AddBook(context.Background(), book), domain.ErrInvalidArgument)
	})
}

func TestRemoveBook(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		loanRepo := new(MockLoanRepo)
		svc := NewBookService(bookRepo, loanRepo)

		loanRepo.On("HasActiveForBook", mock.Anything, int32(10)).Return(false, nil)
		bookRepo.On("Deactivate", mock.Anything, int32(10)).Return(nil)

		assert.NoError(t, svc.RemoveBook(context.Background(), 10))
	})

	t.Run("BlockedByUnreturnedLoans", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		loanRepo := new(MockLoanRepo)
		svc := NewBookService(bookRepo, loanRepo)

		loanRepo.On("HasActiveForBook", mock.Anything, int32(10)).Return(true, nil)

		assert.ErrorIs(t, svc.RemoveBook(context.Background(), 10), domain.ErrConflict)
		bookRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	})
}

func TestUpdateBookISBNChange(t *testing.T) {
	bookRepo := new(MockBookRepo)
	svc := NewBookService(bookRepo, new(MockLoanRepo))

	existing := availableBook(10)
	existing.ISBN = "9780000000001"
	bookRepo.On("GetByID", mock.Anything, int32(10)).Return(existing, nil)
	bookRepo.On("GetByISBN", mock.Anything, "9780134190440").Return(availableBook(11), nil)

	book := &domain.Book{ID: 10, ISBN: "9780134190440", Title: "X", Author: "Y", TotalCopies: 3}
	assert.ErrorIs(t, svc.UpdateBook(context.Background(), book), domain.ErrConflict)
}
