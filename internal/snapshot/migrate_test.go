package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
)

func TestMigrateSessions_BackfillsLegacyShapes(t *testing.T) {
	fallback := []item.Item{
		{ID: "t1", Code: "101", Name: "أرز"},
		{ID: "t2", Code: "102", Name: "سكر"},
	}

	sessions := []session.Session{
		// Pre-snapshot session: no item list at all.
		{ID: "old1"},
		// Items present but missing fields, unsorted.
		{
			ID:      "old2",
			Status:  session.StatusSubmitted,
			Entries: map[string]session.Entry{"a": {ItemID: "a"}},
			Items: []item.Item{
				{ID: "b", Code: "20", Name: "ب"},
				{ID: "a", Name: "أ"},
			},
		},
	}

	out := MigrateSessions(sessions, fallback)

	require.Equal(t, fallback, out[0].Items)
	require.NotNil(t, out[0].Entries)
	require.Equal(t, session.StatusActive, out[0].Status)

	// Missing codes become "000" and sort to the front.
	require.Equal(t, "000", out[1].Items[0].Code)
	require.Equal(t, "a", out[1].Items[0].ID)
	require.Equal(t, "20", out[1].Items[1].Code)
	require.Equal(t, session.StatusSubmitted, out[1].Status)
}

func TestMigrateSessions_FallbackItemsAreCopies(t *testing.T) {
	fallback := []item.Item{{ID: "t1", Code: "101", Name: "أرز"}}
	out := MigrateSessions([]session.Session{{ID: "s"}}, fallback)

	out[0].Items[0].Name = "changed"
	require.Equal(t, "أرز", fallback[0].Name)
}
