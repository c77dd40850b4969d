package services

import (
	"context"

	"docshare/internal/domain/models"
)

// DocumentService exposes document listing and simple mutations
type DocumentService interface {
	ListDocuments(ctx context.Context, viewer *models.Viewer, q models.DocumentQuery) ([]models.Document, error)
	GetDocument(ctx context.Context, viewer *models.Viewer, documentID string) (*models.Document, error)
	StarDocument(ctx context.Context, viewer *models.Viewer, documentID string, starred bool) (*models.Document, error)
	DeleteDocument(ctx context.Context, viewer *models.Viewer, documentID string) error
	// UploadDocument relays a multipart upload; the backend stores the file
	UploadDocument(ctx context.Context, viewer *models.Viewer, upload *models.UploadRequest) (*models.Document, error)
	// OpenDocument returns the document's bytes; the caller closes the stream
	OpenDocument(ctx context.Context, viewer *models.Viewer, documentID string, mode models.FileMode) (*models.FileStream, error)
}
