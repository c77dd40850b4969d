package services

import (
	"context"

	"docshare/internal/domain/models"
)

// TagService manages the caller's tags
type TagService interface {
	ListTags(ctx context.Context, viewer *models.Viewer) ([]models.Tag, error)
	CreateTag(ctx context.Context, viewer *models.Viewer, req *models.TagRequest) (*models.Tag, error)
	UpdateTag(ctx context.Context, viewer *models.Viewer, tagID string, req *models.TagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, viewer *models.Viewer, tagID string) error
}
