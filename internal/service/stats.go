package service

import (
	"context"

	"libris-backend/internal/domain"
	"libris-backend/internal/repository"
)

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return s.statsRepo.GetDashboard(ctx)
}
