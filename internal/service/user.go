package service

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
	pictureService *PictureService
}

func NewUserService(userRepository repository.UserRepository, pictureService *PictureService) *UserService {
	return &UserService{
		userRepository: userRepository,
		pictureService: pictureService,
	}
}

func (s *UserService) ByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.pictureService.ResolveUser(ctx, user)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*model.UserSummary, error) {
	users, err := s.userRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	s.pictureService.ResolveSummaries(ctx, users)
	return users, nil
}

// Search returns the users matching the term and any of the purpose categories.
func (s *UserService) Search(ctx context.Context, filter repository.SearchFilter) ([]*model.UserSummary, error) {
	users, err := s.userRepository.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	s.pictureService.ResolveSummaries(ctx, users)
	return users, nil
}
