package guests

import (
	"context"
	"crypto/rand"
	"log/slog"
	"time"

	"virtboard/internal/utils/sanitize"

	"github.com/oklog/ulid/v2"
)

// Service handles guest lifecycle business logic.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new guests service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create registers a new guest in the stopped state.
func (s *Service) Create(ctx context.Context, req CreateGuestRequest) (*Guest, error) {
	now := time.Now().UTC()
	g := &Guest{
		ID:          ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Name:        req.Name,
		State:       StateStopped,
		VCPUs:       req.VCPUs,
		MemoryMB:    req.MemoryMB,
		Description: sanitize.Clean(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	s.log.Info("guest created", "name", g.Name, "id", g.ID)
	return g, nil
}

// Get returns the guest with the given name.
func (s *Service) Get(ctx context.Context, name string) (*Guest, error) {
	return s.repo.Get(ctx, name)
}

// List returns all guests.
func (s *Service) List(ctx context.Context) ([]*Guest, error) {
	return s.repo.List(ctx)
}

// Update patches mutable fields of the named guest.
func (s *Service) Update(ctx context.Context, name string, req UpdateGuestRequest) (*Guest, error) {
	g, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if req.VCPUs != nil {
		g.VCPUs = *req.VCPUs
	}
	if req.MemoryMB != nil {
		g.MemoryMB = *req.MemoryMB
	}
	if req.Description != nil {
		g.Description = sanitize.Clean(*req.Description)
	}
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a stopped guest.
func (s *Service) Delete(ctx context.Context, name string) error {
	g, err := s.repo.Get(ctx, name)
	if err != nil {
		return err
	}
	if g.State == StateRunning {
		return ErrGuestRunning
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.log.Info("guest deleted", "name", name)
	return nil
}

// Start transitions the named guest to running.
func (s *Service) Start(ctx context.Context, name string) (*Guest, error) {
	return s.transition(ctx, name, StateStopped, StateRunning, ErrAlreadyRunning)
}

// Stop transitions the named guest to stopped.
func (s *Service) Stop(ctx context.Context, name string) (*Guest, error) {
	return s.transition(ctx, name, StateRunning, StateStopped, ErrNotRunning)
}

func (s *Service) transition(ctx context.Context, name, from, to string, stateErr error) (*Guest, error) {
	g, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if g.State != from {
		return nil, stateErr
	}

	g.State = to
	g.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	s.log.Info("guest state changed", "name", name, "state", to)
	return g, nil
}
