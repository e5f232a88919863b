package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jarda-app/jarda/internal/repository"
)

// Service handles site operations.
type Service struct {
	sites    Repository
	sessions SessionCascade
	logger   *slog.Logger
}

// NewService creates a new site service.
func NewService(sites Repository, sessions SessionCascade, logger *slog.Logger) *Service {
	return &Service{sites: sites, sessions: sessions, logger: logger}
}

// Create creates a new site.
func (s *Service) Create(ctx context.Context, name string) (*Site, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	st := Site{ID: uuid.NewString(), Name: name}
	if err := s.sites.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("creating site: %w", err)
	}
	return &st, nil
}

// Rename changes a site's name and propagates it into the denormalized
// siteName of every session belonging to that site.
func (s *Service) Rename(ctx context.Context, id, name string) (*Site, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	st, err := s.sites.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("getting site: %w", err)
	}

	st.Name = name
	if err := s.sites.Update(ctx, *st); err != nil {
		return nil, fmt.Errorf("renaming site: %w", err)
	}

	updated, err := s.sessions.UpdateSiteName(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("cascading site rename: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("site renamed", "site_id", id, "sessions_updated", updated)
	}

	return st, nil
}

// Delete removes a site. Sessions referencing it are left in place with a
// dangling siteId.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.sites.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSiteNotFound
		}
		return fmt.Errorf("deleting site: %w", err)
	}
	return nil
}

// Get fetches a site by ID.
func (s *Service) Get(ctx context.Context, id string) (*Site, error) {
	st, err := s.sites.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("getting site: %w", err)
	}
	return st, nil
}

// List returns all sites.
func (s *Service) List(ctx context.Context) ([]Site, error) {
	return s.sites.List(ctx)
}
