package snapshot

import (
	"context"
	"slices"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
	"github.com/jarda-app/jarda/internal/repository"
)

// SiteRepository implements repository.SiteRepository over the store.
type SiteRepository struct {
	store *Store
}

// NewSiteRepository creates a snapshot-backed site repository.
func NewSiteRepository(store *Store) *SiteRepository {
	return &SiteRepository{store: store}
}

func (r *SiteRepository) Create(ctx context.Context, s site.Site) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sites = append(r.store.sites, s)
	return r.store.persistLocked(ctx, RecordSites, r.store.sites)
}

func (r *SiteRepository) Get(_ context.Context, id string) (*site.Site, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, s := range r.store.sites {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SiteRepository) Update(ctx context.Context, s site.Site) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.sites {
		if r.store.sites[i].ID == s.ID {
			r.store.sites[i] = s
			return r.store.persistLocked(ctx, RecordSites, r.store.sites)
		}
	}
	return repository.ErrNotFound
}

// Delete removes a site. Deleting an absent id is a no-op.
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filtered := slices.DeleteFunc(slices.Clone(r.store.sites), func(s site.Site) bool {
		return s.ID == id
	})
	if len(filtered) == len(r.store.sites) {
		return nil
	}
	r.store.sites = filtered
	return r.store.persistLocked(ctx, RecordSites, r.store.sites)
}

func (r *SiteRepository) List(_ context.Context) ([]site.Site, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return slices.Clone(r.store.sites), nil
}

// SessionRepository implements repository.SessionRepository over the store.
type SessionRepository struct {
	store *Store
}

// NewSessionRepository creates a snapshot-backed session repository.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Create prepends the session so the newest one lists first.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions = append([]session.Session{*sess.Clone()}, r.store.sessions...)
	return r.store.persistLocked(ctx, RecordSessions, r.store.sessions)
}

func (r *SessionRepository) Get(_ context.Context, id string) (*session.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.sessions {
		if r.store.sessions[i].ID == id {
			return r.store.sessions[i].Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.sessions {
		if r.store.sessions[i].ID == sess.ID {
			r.store.sessions[i] = *sess.Clone()
			return r.store.persistLocked(ctx, RecordSessions, r.store.sessions)
		}
	}
	return repository.ErrNotFound
}

func (r *SessionRepository) List(_ context.Context) ([]session.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return cloneSessions(r.store.sessions), nil
}

func (r *SessionRepository) ListBySite(_ context.Context, siteID string) ([]session.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []session.Session
	for i := range r.store.sessions {
		if r.store.sessions[i].SiteID == siteID {
			out = append(out, *r.store.sessions[i].Clone())
		}
	}
	return out, nil
}

// UpdateSiteName rewrites the denormalized site name on every session of
// one site and reports how many changed.
func (r *SessionRepository) UpdateSiteName(ctx context.Context, siteID, siteName string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	updated := 0
	for i := range r.store.sessions {
		if r.store.sessions[i].SiteID == siteID {
			r.store.sessions[i].SiteName = siteName
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}
	return updated, r.store.persistLocked(ctx, RecordSessions, r.store.sessions)
}

func cloneSessions(sessions []session.Session) []session.Session {
	out := make([]session.Session, len(sessions))
	for i := range sessions {
		out[i] = *sessions[i].Clone()
	}
	return out
}

// TemplateRepository implements repository.TemplateRepository over the
// store.
type TemplateRepository struct {
	store *Store
}

// NewTemplateRepository creates a snapshot-backed template repository.
func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

func (r *TemplateRepository) List(_ context.Context) ([]item.Item, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return item.CloneList(r.store.items), nil
}

// Add appends and re-sorts. Duplicate codes are permitted.
func (r *TemplateRepository) Add(ctx context.Context, it item.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.items = item.SortByCode(append(item.CloneList(r.store.items), it))
	return r.store.persistLocked(ctx, RecordTemplateItems, r.store.items)
}

// Delete removes by id. Deleting an absent id is a no-op.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filtered := slices.DeleteFunc(item.CloneList(r.store.items), func(it item.Item) bool {
		return it.ID == id
	})
	if len(filtered) == len(r.store.items) {
		return nil
	}
	r.store.items = filtered
	return r.store.persistLocked(ctx, RecordTemplateItems, r.store.items)
}
