package session

import (
	"context"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/site"
)

// Repository provides persistence for sessions.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, sess *Session) error
	List(ctx context.Context) ([]Session, error)
	ListBySite(ctx context.Context, siteID string) ([]Session, error)
	UpdateSiteName(ctx context.Context, siteID, siteName string) (int, error)
}

// SiteRepository is the slice of the site repository session creation needs.
type SiteRepository interface {
	Get(ctx context.Context, id string) (*site.Site, error)
}

// TemplateRepository supplies the default item list for a site's first
// session.
type TemplateRepository interface {
	List(ctx context.Context) ([]item.Item, error)
}
