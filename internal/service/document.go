package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
	"docshare/internal/domain/services"
)

type documentService struct {
	documents repositories.DocumentBackend
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(documents repositories.DocumentBackend, logger *slog.Logger) services.DocumentService {
	return &documentService{
		documents: documents,
		logger:    logger,
	}
}

// ListDocuments lists documents for a folder and quick filter
func (s *documentService) ListDocuments(ctx context.Context, viewer *models.Viewer, q models.DocumentQuery) ([]models.Document, error) {
	if q.Filter == "" {
		q.Filter = models.FilterAll
	}
	if !q.Filter.Valid() {
		return nil, fmt.Errorf("%w: unknown filter %q", domain.ErrValidation, q.Filter)
	}
	q.Search = strings.TrimSpace(q.Search)

	return s.documents.ListDocuments(ctx, viewer.Token, q)
}

// GetDocument returns one document
func (s *documentService) GetDocument(ctx context.Context, viewer *models.Viewer, documentID string) (*models.Document, error) {
	return s.documents.GetDocument(ctx, viewer.Token, documentID)
}

// StarDocument stars or unstars a document
func (s *documentService) StarDocument(ctx context.Context, viewer *models.Viewer, documentID string, starred bool) (*models.Document, error) {
	doc, err := s.documents.StarDocument(ctx, viewer.Token, documentID, starred)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("document starred", "id", documentID, "starred", starred, "user_id", viewer.UserID)
	return doc, nil
}

// DeleteDocument deletes a document
func (s *documentService) DeleteDocument(ctx context.Context, viewer *models.Viewer, documentID string) error {
	if err := s.documents.DeleteDocument(ctx, viewer.Token, documentID); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", documentID, "user_id", viewer.UserID)
	return nil
}

// UploadDocument relays a multipart upload to the backend
func (s *documentService) UploadDocument(ctx context.Context, viewer *models.Viewer, upload *models.UploadRequest) (*models.Document, error) {
	mediaType, params, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || mediaType != "multipart/form-data" || params["boundary"] == "" {
		return nil, fmt.Errorf("%w: upload must be multipart/form-data", domain.ErrValidation)
	}

	doc, err := s.documents.UploadDocument(ctx, viewer.Token, upload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded",
		"id", doc.ID,
		"name", doc.OriginalName,
		"size", doc.Size,
		"user_id", viewer.UserID,
	)
	return doc, nil
}

// OpenDocument opens a document for download or inline viewing
func (s *documentService) OpenDocument(ctx context.Context, viewer *models.Viewer, documentID string, mode models.FileMode) (*models.FileStream, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown file mode %q", domain.ErrValidation, mode)
	}
	return s.documents.OpenDocument(ctx, viewer.Token, documentID, mode)
}
