package item

import "context"

// Repository provides persistence for the template catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Add(ctx context.Context, it Item) error
	Delete(ctx context.Context, id string) error
}
