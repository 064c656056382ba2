package service

import (
	"context"
	"fmt"

	"libris-backend/internal/domain"
	"libris-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo repository.UserRepository
	loanRepo repository.LoanRepository
}

func NewUserService(userRepo repository.UserRepository, loanRepo repository.LoanRepository) UserService {
	return &userService{userRepo: userRepo, loanRepo: loanRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, phone string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: current password does not match", domain.ErrForbidden)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

func (s *userService) ListMembers(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

// SetActive toggles a member account. Deactivating an account with books
// still out is refused so active loans always reference a live borrower.
func (s *userService) SetActive(ctx context.Context, userID int32, active bool) error {
	if !active {
		hasLoans, err := s.loanRepo.HasActiveForUser(ctx, userID)
		if err != nil {
			return err
		}
		if hasLoans {
			return fmt.Errorf("%w: member has unreturned loans", domain.ErrConflict)
		}
	}
	return s.userRepo.SetActive(ctx, userID, active)
}
