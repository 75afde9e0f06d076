package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pos-admin-api/internal/kv"
	"pos-admin-api/internal/model"
)

// SelectedOutletKey is the store key holding the active outlet.
const SelectedOutletKey = "selectedOutlet"

// SelectionService keeps the currently active outlet. The selection is a
// snapshot independent of the outlets collection: deleting the outlet does
// not clear it, so callers must check it still exists before relying on it.
type SelectionService struct {
	store kv.Store
}

// NewSelectionService creates a selection service.
func NewSelectionService(store kv.Store) *SelectionService {
	return &SelectionService{store: store}
}

// Get returns the selected outlet, or nil if none is selected.
func (s *SelectionService) Get(ctx context.Context) (*model.Outlet, error) {
	data, err := s.store.Get(ctx, SelectedOutletKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selected outlet: %w", err)
	}

	var outlet model.Outlet
	if err := json.Unmarshal(data, &outlet); err != nil {
		return nil, fmt.Errorf("failed to decode selected outlet: %w", err)
	}
	return &outlet, nil
}

// Set replaces the selection.
func (s *SelectionService) Set(ctx context.Context, outlet model.Outlet) error {
	data, err := json.Marshal(outlet)
	if err != nil {
		return fmt.Errorf("failed to encode selected outlet: %w", err)
	}
	if err := s.store.Set(ctx, SelectedOutletKey, data); err != nil {
		return fmt.Errorf("failed to save selected outlet: %w", err)
	}
	return nil
}

// Clear removes the selection.
func (s *SelectionService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, SelectedOutletKey); err != nil {
		return fmt.Errorf("failed to clear selected outlet: %w", err)
	}
	return nil
}
