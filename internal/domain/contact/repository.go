package contact

import "context"

// Repository defines the operations for persisting and retrieving Contact entities.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id string) error
}
