package site

import "context"

// Repository provides persistence for sites.
type Repository interface {
	Create(ctx context.Context, s Site) error
	Get(ctx context.Context, id string) (*Site, error)
	Update(ctx context.Context, s Site) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Site, error)
}

// SessionCascade is the slice of the session repository the site service
// needs to keep denormalized site names in sync after a rename.
type SessionCascade interface {
	UpdateSiteName(ctx context.Context, siteID, siteName string) (int, error)
}
