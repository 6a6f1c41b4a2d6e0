package tickets

import (
	"context"
	"errors"
	"sync"

	"totem/internal/session"
)

var (
	// ErrGenerationInFlight rejects a second generation while one is running.
	ErrGenerationInFlight = errors.New("ticket generation already in flight")

	// ErrStaleAttempt marks a generation that resolved after the session was
	// reset; its result is discarded, never committed.
	ErrStaleAttempt = errors.New("generation attempt superseded")
)

// Fallback museum code used when no museum has been fetched yet.
const fallbackMuseumCode = "TESTMUSEUM"

// Service gates ticket generation: one attempt in flight at a time, one
// batch cached per distinct quantity. Changing the quantity invalidates the
// cache and permits exactly one new attempt.
type Service interface {
	Tickets(ctx context.Context) (*Batch, error)
	Invalidate()
}

type service struct {
	mu        sync.Mutex
	generator *Generator
	store     *session.Store

	inFlight  bool
	attempt   uint64
	cached    *Batch
	cachedFor int
}

// NewService creates the single-flight generation service.
func NewService(generator *Generator, store *session.Store) Service {
	return &service{
		generator: generator,
		store:     store,
	}
}

// Tickets returns the batch for the session's current quantity, generating
// it on first request. A repeated request with an unchanged quantity returns
// the cached batch rather than concatenating a new one.
func (s *service) Tickets(ctx context.Context) (*Batch, error) {
	s.mu.Lock()

	quantity := s.store.TicketQuantity()
	if s.cached != nil && s.cachedFor == quantity {
		batch := s.cached
		s.mu.Unlock()
		return batch, nil
	}

	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}

	s.inFlight = true
	token := s.attempt
	museumID := s.store.MuseumID()
	museumCode := fallbackMuseumCode
	if m := s.store.Museum(); m != nil && m.Code != "" {
		museumCode = m.Code
	}
	s.mu.Unlock()

	s.store.SetLoading(true)
	s.store.SetError("")
	batch := s.generator.Generate(ctx, museumCode, quantity, museumID)
	s.store.SetLoading(false)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	// A reset while the sequential calls were running invalidated this
	// attempt; its batch must not leak into the fresh session.
	if token != s.attempt {
		return nil, ErrStaleAttempt
	}

	s.cached = batch
	s.cachedFor = quantity
	s.store.SetTickets(batch.Tickets)
	if batch.Fallback {
		s.store.SetError("Failed to generate tickets")
	}

	return batch, nil
}

// Invalidate drops the cached batch and supersedes any in-flight attempt.
// Called on quantity changes and on session resets.
func (s *service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++
	s.cached = nil
	s.cachedFor = 0
}
