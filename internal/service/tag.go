package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"docshare/internal/config"
	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
	"docshare/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DefaultTagColor is used when a tag is created without a colour
const DefaultTagColor = "#6366f1"

type tagService struct {
	directory repositories.DirectoryBackend
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(directory repositories.DirectoryBackend, logger *slog.Logger) services.TagService {
	return &tagService{
		directory: directory,
		logger:    logger,
	}
}

// ListTags returns the caller's tags
func (s *tagService) ListTags(ctx context.Context, viewer *models.Viewer) ([]models.Tag, error) {
	return s.directory.ListTags(ctx, viewer.Token)
}

// CreateTag creates a tag
func (s *tagService) CreateTag(ctx context.Context, viewer *models.Viewer, req *models.TagRequest) (*models.Tag, error) {
	if strings.TrimSpace(req.Color) == "" {
		req.Color = DefaultTagColor
	}
	if err := validateTag(req); err != nil {
		return nil, err
	}

	tag, err := s.directory.CreateTag(ctx, viewer.Token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name, "user_id", viewer.UserID)
	return tag, nil
}

// UpdateTag updates a tag
func (s *tagService) UpdateTag(ctx context.Context, viewer *models.Viewer, tagID string, req *models.TagRequest) (*models.Tag, error) {
	if err := validateTag(req); err != nil {
		return nil, err
	}

	tag, err := s.directory.UpdateTag(ctx, viewer.Token, tagID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "id", tagID, "user_id", viewer.UserID)
	return tag, nil
}

// DeleteTag deletes a tag
func (s *tagService) DeleteTag(ctx context.Context, viewer *models.Viewer, tagID string) error {
	if err := s.directory.DeleteTag(ctx, viewer.Token, tagID); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", tagID, "user_id", viewer.UserID)
	return nil
}

func validateTag(req *models.TagRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Color = strings.TrimSpace(req.Color)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxTagNameLength)),
		validation.Field(&req.Color,
			validation.Required,
			validation.Match(hexColor).Error("must be a hex colour such as #1a2b3c"),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
