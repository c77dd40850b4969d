package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
	"docshare/internal/domain/services"
	"docshare/internal/sharing"
)

// ViewStateService implements the ViewStateService interface
type ViewStateService struct {
	repo      repositories.ViewStateRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewViewStateService creates a new view state service
func NewViewStateService(
	repo repositories.ViewStateRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ViewStateService {
	return &ViewStateService{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetViewState returns the saved state or defaults
func (s *ViewStateService) GetViewState(ctx context.Context, userID string) (*models.ViewState, error) {
	state, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get view state: %w", err)
	}

	if state == nil {
		s.logger.Debug("no view state found, returning defaults", "user_id", userID)
		state = models.DefaultViewState(userID)
	}

	return state, nil
}

// UpdateViewState applies a partial update and saves it
func (s *ViewStateService) UpdateViewState(ctx context.Context, userID string, req *models.UpdateViewStateRequest) (*models.ViewState, error) {
	if req.CurrentFilter != nil && !req.CurrentFilter.Valid() {
		return nil, fmt.Errorf("%w: unknown filter %q", domain.ErrValidation, *req.CurrentFilter)
	}

	var updated *models.ViewState
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		state, err := s.loadForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		// Tri-state: only move when the field was present
		if req.CurrentFolder.Present {
			state.CurrentFolder = req.CurrentFolder.Value
			if state.CurrentFolder != nil && *state.CurrentFolder == "" {
				state.CurrentFolder = nil
			}
		}
		if req.CurrentFilter != nil {
			state.CurrentFilter = *req.CurrentFilter
		}
		if req.ExpandedFolders != nil {
			state.ExpandedFolders = sharing.Dedupe(req.ExpandedFolders)
		}

		state.UpdatedAt = time.Now()
		if err := s.repo.Upsert(ctx, state); err != nil {
			return fmt.Errorf("upsert view state: %w", err)
		}
		updated = state
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("view state updated",
		"user_id", userID,
		"has_folder", req.CurrentFolder.Present,
		"has_filter", req.CurrentFilter != nil,
		"has_expanded", req.ExpandedFolders != nil,
	)

	return updated, nil
}

// ToggleExpanded opens or closes one folder in the saved expansion set
func (s *ViewStateService) ToggleExpanded(ctx context.Context, userID, folderID string) (*models.ViewState, error) {
	if folderID == "" {
		return nil, fmt.Errorf("%w: folder id is required", domain.ErrValidation)
	}

	var updated *models.ViewState
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		state, err := s.loadForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		state.ToggleExpanded(folderID)
		state.UpdatedAt = time.Now()
		if err := s.repo.Upsert(ctx, state); err != nil {
			return fmt.Errorf("upsert view state: %w", err)
		}
		updated = state
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *ViewStateService) loadForUpdate(ctx context.Context, userID string) (*models.ViewState, error) {
	state, err := s.repo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get view state: %w", err)
	}
	if state == nil {
		state = models.DefaultViewState(userID)
	}
	if state.ExpandedFolders == nil {
		state.ExpandedFolders = []string{}
	}
	return state, nil
}
