package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jarda-app/jarda/internal/advisory"
	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/repository"
)

// Service handles session operations. It is the only writer of session
// state; every mutation funnels through it.
type Service struct {
	sessions Repository
	sites    SiteRepository
	template TemplateRepository
	checker  advisory.Checker
	logger   *slog.Logger

	mu    sync.Mutex
	gates map[string]*Gate
}

// NewService creates a new session service.
func NewService(
	sessions Repository,
	sites SiteRepository,
	template TemplateRepository,
	checker advisory.Checker,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		sites:    sites,
		template: template,
		checker:  checker,
		logger:   logger,
		gates:    make(map[string]*Gate),
	}
}

// CreateRequest defines session creation inputs. Blank dates default to
// today.
type CreateRequest struct {
	SiteID    string
	StartDate string
	EndDate   string
}

// Create opens a new counting session for a site. The item list is seeded
// copy-forward: the site's most recent prior session wins, otherwise the
// current template. The seed is deep-copied and re-sorted, so later edits
// to either list are independent.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Session, error) {
	if strings.TrimSpace(req.SiteID) == "" {
		return nil, ErrInvalidInput
	}

	st, err := s.sites.Get(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("loading site: %w", err)
	}

	seed, err := s.seedItems(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	startDate := req.StartDate
	if startDate == "" {
		startDate = today
	}
	endDate := req.EndDate
	if endDate == "" {
		endDate = today
	}

	sess := &Session{
		ID:        uuid.NewString(),
		SiteID:    st.ID,
		SiteName:  st.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    StatusActive,
		Entries:   map[string]Entry{},
		Items:     item.SortByCode(item.CloneList(seed)),
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

// seedItems picks the item list that seeds a new session: the items of the
// site's session with the greatest start date, or the template when the
// site has no sessions yet. ISO dates compare chronologically as strings.
func (s *Service) seedItems(ctx context.Context, siteID string) ([]item.Item, error) {
	prior, err := s.sessions.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing site sessions: %w", err)
	}

	var latest *Session
	for i := range prior {
		if latest == nil || prior[i].StartDate > latest.StartDate {
			latest = &prior[i]
		}
	}
	if latest != nil {
		return latest.Items, nil
	}

	items, err := s.template.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	return items, nil
}

// RecordEntry replaces the entry for one item wholesale. A nil quantity
// records "not yet counted". The session must still be active: entry
// writes on submitted or approved sessions are rejected at this layer, not
// just in the UI.
func (s *Service) RecordEntry(ctx context.Context, sessionID, itemID string, quantity *float64, notes string) (*Session, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != StatusActive {
		return nil, ErrSessionLocked
	}

	if sess.Entries == nil {
		sess.Entries = map[string]Entry{}
	}
	sess.Entries[itemID] = Entry{ItemID: itemID, Quantity: quantity, Notes: notes}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("recording entry: %w", err)
	}
	return sess, nil
}

// ReplaceEntries swaps the whole entries map, the draft-save path. Same
// status guard as RecordEntry.
func (s *Service) ReplaceEntries(ctx context.Context, sessionID string, entries map[string]Entry) (*Session, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != StatusActive {
		return nil, ErrSessionLocked
	}

	sess.Entries = CloneEntries(entries)

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("replacing entries: %w", err)
	}
	return sess, nil
}

// UpdateItems replaces a session's item list, re-sorted. Entries are left
// untouched, so an entry for a removed item becomes orphaned rather than
// purged.
func (s *Service) UpdateItems(ctx context.Context, sessionID string, items []item.Item) (*Session, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.Items = item.SortByCode(item.CloneList(items))

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("updating session items: %w", err)
	}
	return sess, nil
}

// Submit moves an active session to submitted. Partial completion is
// permitted; warning the supervisor is the caller's job. A final entries
// payload may ride along so draft state and submission land atomically.
func (s *Service) Submit(ctx context.Context, sessionID string, entries map[string]Entry) (*Session, error) {
	return s.transition(ctx, sessionID, StatusActive, StatusSubmitted, entries)
}

// Approve moves a submitted session to approved.
func (s *Service) Approve(ctx context.Context, sessionID string) (*Session, error) {
	return s.transition(ctx, sessionID, StatusSubmitted, StatusApproved, nil)
}

// RequestModification reopens a submitted session for the supervisor.
func (s *Service) RequestModification(ctx context.Context, sessionID string) (*Session, error) {
	return s.transition(ctx, sessionID, StatusSubmitted, StatusActive, nil)
}

// Unapprove sends an approved session back to submitted, not straight to
// active.
func (s *Service) Unapprove(ctx context.Context, sessionID string) (*Session, error) {
	return s.transition(ctx, sessionID, StatusApproved, StatusSubmitted, nil)
}

func (s *Service) transition(ctx context.Context, sessionID string, from, to Status, entries map[string]Entry) (*Session, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sess.Status, to)
	}

	if entries != nil {
		sess.Entries = CloneEntries(entries)
	}
	sess.Status = to

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("updating session status: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("session status changed", "session_id", sessionID, "from", from, "to", to)
	}
	return sess, nil
}

// Get fetches a session by ID.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.get(ctx, id)
}

// List returns all sessions.
func (s *Service) List(ctx context.Context) ([]Session, error) {
	return s.sessions.List(ctx)
}

// ListBySite returns the sessions belonging to one site.
func (s *Service) ListBySite(ctx context.Context, siteID string) ([]Session, error) {
	return s.sessions.ListBySite(ctx, siteID)
}

// CheckAdvance runs the advance gate for one item of a session: the
// admin-defined range check first, then the advisory heuristic for large
// quantities without a range.
func (s *Service) CheckAdvance(ctx context.Context, sessionID, itemID string, quantity *float64) (GateResult, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return GateResult{}, err
	}

	var target *item.Item
	for i := range sess.Items {
		if sess.Items[i].ID == itemID {
			target = &sess.Items[i]
			break
		}
	}
	if target == nil {
		return GateResult{}, ErrItemNotFound
	}

	return s.gateFor(sessionID).Advance(ctx, *target, quantity), nil
}

// OverrideAdvance clears any outstanding warning for the item and lets the
// supervisor move on regardless.
func (s *Service) OverrideAdvance(sessionID, itemID string) GateResult {
	return s.gateFor(sessionID).Override(itemID)
}

func (s *Service) gateFor(sessionID string) *Gate {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gates[sessionID]
	if !ok {
		g = NewGate(s.checker, s.logger)
		s.gates[sessionID] = g
	}
	return g
}

func (s *Service) get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}
