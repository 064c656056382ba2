package postgres

import (
	"database/sql"

	"libris-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CategoryRepository
	repository.BookRepository
	repository.LoanRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		CategoryRepository: NewCategoryRepository(db),
		BookRepository:     NewBookRepository(db),
		LoanRepository:     NewLoanRepository(db),
		StatsRepository:    NewStatsRepository(db),
	}
}
