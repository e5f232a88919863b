package snapshot

import (
	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
)

// MigrateSessions canonicalizes sessions loaded from an older snapshot:
// sessions without their own item list get the fallback catalog, items
// without a code get "000", nil entry maps become empty, and the item list
// is re-sorted. Pure; applied once at load time, never during steady-state
// mutation.
func MigrateSessions(sessions []session.Session, fallback []item.Item) []session.Session {
	out := make([]session.Session, len(sessions))
	for i, s := range sessions {
		// Clone normalizes nil Items/Entries to empty, so the legacy-shape
		// checks look at the source session.
		migrated := *s.Clone()
		if s.Items == nil {
			migrated.Items = item.CloneList(fallback)
		}
		for j := range migrated.Items {
			if migrated.Items[j].Code == "" {
				migrated.Items[j].Code = "000"
			}
		}
		migrated.Items = item.SortByCode(migrated.Items)
		if migrated.Status == "" {
			migrated.Status = session.StatusActive
		}
		out[i] = migrated
	}
	return out
}
