package guests

import "context"

// Repository defines the persistence operations the guests service needs.
// Guests are keyed by name.
type Repository interface {
	Create(ctx context.Context, g *Guest) error
	Get(ctx context.Context, name string) (*Guest, error)
	List(ctx context.Context) ([]*Guest, error)
	Update(ctx context.Context, g *Guest) error
	Delete(ctx context.Context, name string) error
}
