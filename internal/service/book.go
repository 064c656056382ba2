package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libris-backend/internal/domain"
	"libris-backend/internal/repository"
)

type bookService struct {
	bookRepo repository.BookRepository
	loanRepo repository.LoanRepository
}

func NewBookService(bookRepo repository.BookRepository, loanRepo repository.LoanRepository) BookService {
	return &bookService{bookRepo: bookRepo, loanRepo: loanRepo}
}

func normalizeISBN(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(isbn)
}

func validISBN(isbn string) bool {
	if len(isbn) != 13 {
		return false
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *bookService) AddBook(ctx context.Context, book *domain.Book) error {
	book.ISBN = normalizeISBN(book.ISBN)
	if !validISBN(book.ISBN) {
		return fmt.Errorf("%w: ISBN must be 13 digits", domain.ErrInvalidArgument)
	}
	if book.Title == "" || book.Author == "" {
		return fmt.Errorf("%w: title and author are required", domain.ErrInvalidArgument)
	}
	if book.TotalCopies < 1 {
		return fmt.Errorf("%w: total_copies must be at least 1", domain.ErrInvalidArgument)
	}

	if _, err := s.bookRepo.GetByISBN(ctx, book.ISBN); err == nil {
		return fmt.Errorf("%w: ISBN already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	book.IsActive = true
	return s.bookRepo.Create(ctx, book)
}

func (s *bookService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookService) UpdateBook(ctx context.Context, book *domain.Book) error {
	book.ISBN = normalizeISBN(book.ISBN)
	if !validISBN(book.ISBN) {
		return fmt.Errorf("%w: ISBN must be 13 digits", domain.ErrInvalidArgument)
	}
	if book.TotalCopies < 1 {
		return fmt.Errorf("%w: total_copies must be at least 1", domain.ErrInvalidArgument)
	}

	existing, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return err
	}
	if existing.ISBN != book.ISBN {
		if _, err := s.bookRepo.GetByISBN(ctx, book.ISBN); err == nil {
			return fmt.Errorf("%w: ISBN already registered", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}

	return s.bookRepo.Update(ctx, book)
}

// RemoveBook soft-deletes. A title with copies still out stays on record
// until every loan against it is closed.
func (s *bookService) RemoveBook(ctx context.Context, id int32) error {
	hasLoans, err := s.loanRepo.HasActiveForBook(ctx, id)
	if err != nil {
		return err
	}
	if hasLoans {
		return fmt.Errorf("%w: book has unreturned loans", domain.ErrConflict)
	}
	return s.bookRepo.Deactivate(ctx, id)
}

func (s *bookService) SearchBooks(ctx context.Context, query string, categoryID, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.Search(ctx, query, categoryID, page, pageSize)
}
