package snapshot

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
	"github.com/jarda-app/jarda/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "jarda.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestStore(t *testing.T, db *DB, bus Bus) *Store {
	t.Helper()
	store := NewStore(db, bus, DefaultSeed(), nil)
	require.NoError(t, store.Load(context.Background()))
	t.Cleanup(store.Close)
	return store
}

func TestStore_LoadSeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := newTestStore(t, db, NewMemoryBus())

	sites, err := NewSiteRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	items, err := NewTemplateRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 10)
	require.Equal(t, "101", items[0].Code)

	// Seeding persists, so the snapshots exist on disk afterwards.
	payload, err := db.LoadSnapshot(ctx, RecordSites)
	require.NoError(t, err)
	var stored []site.Site
	require.NoError(t, json.Unmarshal(payload, &stored))
	require.Len(t, stored, 2)
}

func TestStore_MutationSurvivesReload(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	store := newTestStore(t, db, NewMemoryBus())
	require.NoError(t, NewSiteRepository(store).Create(ctx, site.Site{ID: "site9", Name: "موقع جديد"}))
	store.Close()

	reloaded := newTestStore(t, db, NewMemoryBus())
	got, err := NewSiteRepository(reloaded).Get(ctx, "site9")
	require.NoError(t, err)
	require.Equal(t, "موقع جديد", got.Name)
}

func TestStore_ExternalChangeReplacesCollection(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()
	store := newTestStore(t, newTestDB(t), bus)

	incoming := []session.Session{{
		ID:      "remote1",
		SiteID:  "site1",
		Status:  session.StatusActive,
		Entries: map[string]session.Entry{},
		Items:   []item.Item{{ID: "x", Code: "1"}},
	}}
	payload, err := json.Marshal(incoming)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, Change{Origin: "another-view", Record: RecordSessions, Payload: payload}))

	sessions, err := NewSessionRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "remote1", sessions[0].ID)
}

func TestStore_IgnoresOwnNotifications(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()
	store := newTestStore(t, newTestDB(t), bus)

	// Capture the origin the store stamps on its broadcasts.
	var origin string
	unsubscribe := bus.Subscribe(func(c Change) { origin = c.Origin })
	defer unsubscribe()

	require.NoError(t, NewSiteRepository(store).Create(ctx, site.Site{ID: "site9", Name: "x"}))
	require.NotEmpty(t, origin)

	// A change stamped with the store's own origin must not be applied.
	payload, err := json.Marshal([]site.Site{})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, Change{Origin: origin, Record: RecordSites, Payload: payload}))

	sites, err := NewSiteRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 3)
}

func TestStore_TwoViewsConverge(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()
	viewA := newTestStore(t, newTestDB(t), bus)
	viewB := newTestStore(t, newTestDB(t), bus)

	require.NoError(t, NewSiteRepository(viewA).Create(ctx, site.Site{ID: "site9", Name: "جديد"}))

	got, err := NewSiteRepository(viewB).Get(ctx, "site9")
	require.NoError(t, err)
	require.Equal(t, "جديد", got.Name)
}

func TestSessionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestDB(t), NewMemoryBus())
	repo := NewSessionRepository(store)

	sess := &session.Session{
		ID:        "s9",
		SiteID:    "site1",
		SiteName:  "مشروع البحر الأحمر - المنطقة أ",
		StartDate: "2024-01-05",
		EndDate:   "2024-01-12",
		Status:    session.StatusActive,
		Entries:   map[string]session.Entry{},
		Items:     []item.Item{{ID: "i1", Code: "101"}},
	}
	require.NoError(t, repo.Create(ctx, sess))

	// Newest session lists first.
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "s9", all[0].ID)

	loaded, err := repo.Get(ctx, "s9")
	require.NoError(t, err)
	loaded.Status = session.StatusSubmitted
	require.NoError(t, repo.Update(ctx, loaded))

	again, err := repo.Get(ctx, "s9")
	require.NoError(t, err)
	require.Equal(t, session.StatusSubmitted, again.Status)

	bySite, err := repo.ListBySite(ctx, "site1")
	require.NoError(t, err)
	require.Len(t, bySite, 2) // seed session + s9

	_, err = repo.Get(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_UpdateSiteName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestDB(t), NewMemoryBus())
	repo := NewSessionRepository(store)

	require.NoError(t, repo.Create(ctx, &session.Session{ID: "a", SiteID: "site1"}))
	require.NoError(t, repo.Create(ctx, &session.Session{ID: "b", SiteID: "site2"}))

	updated, err := repo.UpdateSiteName(ctx, "site1", "مسمى جديد")
	require.NoError(t, err)
	require.Equal(t, 2, updated) // seed session + a

	a, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "مسمى جديد", a.SiteName)

	b, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	require.NotEqual(t, "مسمى جديد", b.SiteName)
}

func TestSessionRepository_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestDB(t), NewMemoryBus())
	repo := NewSessionRepository(store)

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	loaded.Items[0].Code = "mutated"

	fresh, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotEqual(t, "mutated", fresh.Items[0].Code)
}

func TestTemplateRepository_AddSortsAndDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestDB(t), NewMemoryBus())
	repo := NewTemplateRepository(store)

	require.NoError(t, repo.Add(ctx, item.Item{ID: "new", Code: "100", Name: "جديد"}))
	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", items[0].ID) // 100 sorts before 101

	require.NoError(t, repo.Delete(ctx, "new"))
	require.NoError(t, repo.Delete(ctx, "new"))

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 10)
}

func TestSiteRepository_DeleteLeavesSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestDB(t), NewMemoryBus())

	require.NoError(t, NewSiteRepository(store).Delete(ctx, "site1"))

	_, err := NewSiteRepository(store).Get(ctx, "site1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// The seed session keeps its dangling site reference.
	sessions, err := NewSessionRepository(store).ListBySite(ctx, "site1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}
