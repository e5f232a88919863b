// Package snapshot is the persistence/sync layer: three named collections
// (sites, sessions, template items), each saved as a complete JSON snapshot
// on every mutation and rebroadcast so other open views converge.
// Convergence is last-writer-wins by whole-collection replace; there is no
// merge of concurrent edits and no versioning.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
	"github.com/jarda-app/jarda/internal/repository"
)

// Record names for the three persisted collections.
const (
	RecordSites         = "sites"
	RecordSessions      = "sessions"
	RecordTemplateItems = "template_items"
)

// Store holds the in-memory working copies of the three collections and
// keeps them durable and synchronized. All repository access goes through
// it; its mutex is the only serialization point.
type Store struct {
	origin  string
	backend Backend
	bus     Bus
	seed    Seed
	logger  *slog.Logger

	mu       sync.RWMutex
	sites    []site.Site
	sessions []session.Session
	items    []item.Item

	unsubscribe func()
}

// NewStore creates a store. Call Load before handing out repositories.
func NewStore(backend Backend, bus Bus, seed Seed, logger *slog.Logger) *Store {
	return &Store{
		origin:  uuid.NewString(),
		backend: backend,
		bus:     bus,
		seed:    seed,
		logger:  logger,
	}
}

// Load reads the three collections from the backend, seeding any that were
// never saved, migrates sessions defensively, and starts listening for
// changes from other views.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sites, seeded, err := loadRecord(ctx, s.backend, RecordSites, s.seed.Sites)
	if err != nil {
		return err
	}
	s.sites = sites
	if seeded {
		if err := s.persistLocked(ctx, RecordSites, s.sites); err != nil {
			return err
		}
	}

	sessions, seeded, err := loadRecord(ctx, s.backend, RecordSessions, s.seed.Sessions)
	if err != nil {
		return err
	}
	s.sessions = MigrateSessions(sessions, s.seed.Items)
	if seeded {
		if err := s.persistLocked(ctx, RecordSessions, s.sessions); err != nil {
			return err
		}
	}

	items, seeded, err := loadRecord(ctx, s.backend, RecordTemplateItems, s.seed.Items)
	if err != nil {
		return err
	}
	s.items = item.SortByCode(items)
	if seeded {
		if err := s.persistLocked(ctx, RecordTemplateItems, s.items); err != nil {
			return err
		}
	}

	if s.bus != nil {
		s.unsubscribe = s.bus.Subscribe(s.handleChange)
	}
	return nil
}

func loadRecord[T any](ctx context.Context, backend Backend, name string, seed []T) ([]T, bool, error) {
	payload, err := backend.LoadSnapshot(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		out := make([]T, len(seed))
		copy(out, seed)
		return out, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", name, err)
	}

	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false, fmt.Errorf("decoding %s snapshot: %w", name, err)
	}
	return out, false, nil
}

// Close stops listening for external changes.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// persistLocked serializes a collection, writes it durably, and broadcasts
// it. The caller holds s.mu.
func (s *Store) persistLocked(ctx context.Context, name string, collection any) error {
	payload, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := s.backend.SaveSnapshot(ctx, name, payload); err != nil {
		return err
	}

	if s.bus == nil {
		return nil
	}
	// A broadcast failure doesn't undo a durable write; other views catch
	// up on their next load.
	if err := s.bus.Publish(ctx, Change{Origin: s.origin, Record: name, Payload: payload}); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to broadcast change", "record", name, "error", err)
		}
	}
	return nil
}

// handleChange replaces a collection wholesale when another view writes it.
// The store's own notifications are dropped.
func (s *Store) handleChange(change Change) {
	if change.Origin == s.origin {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch change.Record {
	case RecordSites:
		var sites []site.Site
		if err := json.Unmarshal(change.Payload, &sites); err != nil {
			s.warnChange(change.Record, err)
			return
		}
		s.sites = sites
	case RecordSessions:
		var sessions []session.Session
		if err := json.Unmarshal(change.Payload, &sessions); err != nil {
			s.warnChange(change.Record, err)
			return
		}
		s.sessions = MigrateSessions(sessions, s.seed.Items)
	case RecordTemplateItems:
		var items []item.Item
		if err := json.Unmarshal(change.Payload, &items); err != nil {
			s.warnChange(change.Record, err)
			return
		}
		s.items = item.SortByCode(items)
	default:
		return
	}

	if s.logger != nil {
		s.logger.Debug("applied external change", "record", change.Record, "origin", change.Origin)
	}
}

func (s *Store) warnChange(record string, err error) {
	if s.logger != nil {
		s.logger.Warn("dropping undecodable change", "record", record, "error", err)
	}
}
