package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/skillswap/skillswap/internal/markdown"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/validation"
)

type CollaborationService struct {
	projectRequestRepository repository.ProjectRequestRepository
	parser                   *markdown.Parser
}

func NewCollaborationService(projectRequestRepository repository.ProjectRequestRepository) *CollaborationService {
	return &CollaborationService{
		projectRequestRepository: projectRequestRepository,
		parser:                   markdown.NewTextParser(),
	}
}

// Requests returns all collaboration requests newest first with their
// descriptions rendered from markdown.
func (s *CollaborationService) Requests(ctx context.Context) ([]*model.ProjectRequest, error) {
	requests, err := s.projectRequestRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	for _, req := range requests {
		html, err := s.parser.Render([]byte(req.Description))
		if err != nil {
			slog.Warn("failed to render request description", "error", err, "request_id", req.ID)
			req.DescriptionHTML = template.HTMLEscapeString(req.Description)
			continue
		}
		req.DescriptionHTML = string(html)
	}
	return requests, nil
}

func (s *CollaborationService) Post(ctx context.Context, poster *model.User, title, description, skillNeeded string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	skillNeeded = strings.TrimSpace(skillNeeded)

	err := validation.ValidateProjectRequest(title, description, skillNeeded)
	if err != nil {
		return invalid(err)
	}

	err = s.projectRequestRepository.Create(ctx, &model.ProjectRequest{
		PosterID:    poster.ID,
		Title:       title,
		Description: description,
		SkillNeeded: skillNeeded,
	})
	if err != nil {
		return fmt.Errorf("failed to post request: %w", err)
	}
	return nil
}
