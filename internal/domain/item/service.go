package item

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Service handles template catalog operations. The template is the default
// item list used to seed a site's very first counting session; edits never
// reach sessions that already exist.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new template service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddRequest defines template item creation inputs.
type AddRequest struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Brand       string   `json:"brand"`
	Name        string   `json:"name"`
	Unit        string   `json:"unit"`
	MinQuantity *float64 `json:"minQuantity"`
	MaxQuantity *float64 `json:"maxQuantity"`
}

// Add appends an item to the template. Duplicate codes are permitted.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	it := Item{
		ID:          id,
		Code:        req.Code,
		Brand:       req.Brand,
		Name:        req.Name,
		Unit:        req.Unit,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
	}

	if err := s.repo.Add(ctx, it); err != nil {
		return nil, fmt.Errorf("adding template item: %w", err)
	}
	return &it, nil
}

// Delete removes an item from the template. Deleting an absent id is a
// no-op, not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting template item: %w", err)
	}
	return nil
}

// List returns the current template, sorted by code.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing template items: %w", err)
	}
	return items, nil
}
