package contracts

import (
	"context"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
)

// SiteRepository manages site persistence
type SiteRepository interface {
	Create(ctx context.Context, s site.Site) error
	Get(ctx context.Context, id string) (*site.Site, error)
	Update(ctx context.Context, s site.Site) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]site.Site, error)
}

// SessionRepository manages session persistence
type SessionRepository interface {
	Create(ctx context.Context, sess *session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	Update(ctx context.Context, sess *session.Session) error
	List(ctx context.Context) ([]session.Session, error)
	ListBySite(ctx context.Context, siteID string) ([]session.Session, error)
	UpdateSiteName(ctx context.Context, siteID, siteName string) (int, error)
}

// TemplateRepository manages the template catalog
type TemplateRepository interface {
	List(ctx context.Context) ([]item.Item, error)
	Add(ctx context.Context, it item.Item) error
	Delete(ctx context.Context, id string) error
}
