package service

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

type ReportService struct {
	reportRepository repository.ReportRepository
}

func NewReportService(reportRepository repository.ReportRepository) *ReportService {
	return &ReportService{reportRepository: reportRepository}
}

// DetailedUsers lists users whose skills text is longer than the average of
// users who registered the same day, longest first.
func (s *ReportService) DetailedUsers(ctx context.Context) ([]*model.DetailedUser, error) {
	rows, err := s.reportRepository.DetailedUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build detailed users report: %w", err)
	}
	return rows, nil
}

// MutualMessages lists pairs of users who have both messaged each other.
func (s *ReportService) MutualMessages(ctx context.Context) ([]*model.MutualPair, error) {
	rows, err := s.reportRepository.MutualMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build mutual messages report: %w", err)
	}
	return rows, nil
}
