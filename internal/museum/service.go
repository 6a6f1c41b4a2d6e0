package museum

import (
	"context"

	"totem/internal/session"
)

// Service keeps the session's museum entity in sync with the configured id.
type Service interface {
	Current(ctx context.Context) *session.Museum
	Refresh(ctx context.Context) *session.Museum
}

type service struct {
	client *Client
	store  *session.Store
}

// NewService creates a museum service bound to the live session.
func NewService(client *Client, store *session.Store) Service {
	return &service{client: client, store: store}
}

// Current returns the session's museum, fetching it on first use.
func (s *service) Current(ctx context.Context) *session.Museum {
	if m := s.store.Museum(); m != nil {
		return m
	}
	return s.Refresh(ctx)
}

// Refresh re-fetches the museum for the configured id and stores it.
// Lookup failures resolve to the mock museum, never an error.
func (s *service) Refresh(ctx context.Context) *session.Museum {
	m := s.client.FetchMuseum(ctx, s.store.MuseumID())
	s.store.SetMuseum(m)
	return m
}
