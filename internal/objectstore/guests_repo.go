package objectstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"virtboard/internal/services/guests"
)

const guestKind = "guest"

// GuestsRepo implements guests.Repository on top of a Store.
type GuestsRepo struct {
	store *Store
}

// NewGuestsRepo creates a guests repository backed by store.
func NewGuestsRepo(store *Store) *GuestsRepo {
	return &GuestsRepo{store: store}
}

// Create stores a new guest; the name must be unused.
func (r *GuestsRepo) Create(ctx context.Context, g *guests.Guest) error {
	taken, err := r.store.Exists(ctx, guestKind, g.Name)
	if err != nil {
		return err
	}
	if taken {
		return guests.ErrDuplicateName
	}
	return r.store.Put(ctx, guestKind, g.Name, g)
}

// Get loads the guest stored under name.
func (r *GuestsRepo) Get(ctx context.Context, name string) (*guests.Guest, error) {
	var g guests.Guest
	err := r.store.Get(ctx, guestKind, name, &g)
	if errors.Is(err, ErrNotFound) {
		return nil, guests.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all guests in creation order.
func (r *GuestsRepo) List(ctx context.Context) ([]*guests.Guest, error) {
	docs, err := r.store.List(ctx, guestKind)
	if err != nil {
		return nil, err
	}

	out := make([]*guests.Guest, 0, len(docs))
	for _, doc := range docs {
		var g guests.Guest
		if err := json.Unmarshal(doc, &g); err != nil {
			return nil, fmt.Errorf("decode guest: %w", err)
		}
		out = append(out, &g)
	}
	return out, nil
}

// Update overwrites an existing guest record.
func (r *GuestsRepo) Update(ctx context.Context, g *guests.Guest) error {
	taken, err := r.store.Exists(ctx, guestKind, g.Name)
	if err != nil {
		return err
	}
	if !taken {
		return guests.ErrNotFound
	}
	return r.store.Put(ctx, guestKind, g.Name, g)
}

// Delete removes the guest stored under name.
func (r *GuestsRepo) Delete(ctx context.Context, name string) error {
	err := r.store.Delete(ctx, guestKind, name)
	if errors.Is(err, ErrNotFound) {
		return guests.ErrNotFound
	}
	return err
}
