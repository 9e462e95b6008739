// Package storage implements the subscription store. Two implementations
// share the service.Store contract: an in-memory store matching the
// reference process-lifetime semantics, and a SQLite store for anyone who
// wants the list to survive a restart.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/model"
)

// MemoryStore keeps subscriptions in an in-memory list for the process
// lifetime. Every public operation runs start-to-finish under one mutex,
// so concurrent scans cannot both observe "not found" and create twins.
type MemoryStore struct {
	now    func() time.Time
	subs   []*model.Subscription
	nextID int64
	mu     sync.Mutex
}

// NewMemoryStore creates a memory store, optionally pre-populated with
// seed subscriptions. Counter-assigned identifiers start above the
// highest numeric seeded id.
func NewMemoryStore(seed ...model.Subscription) *MemoryStore {
	s := &MemoryStore{now: time.Now, nextID: 1}
	for _, sub := range seed {
		c := sub
		if c.ID == "" {
			c.ID = strconv.FormatInt(s.nextID, 10)
		}
		if id, err := strconv.ParseInt(c.ID, 10, 64); err == nil && id >= s.nextID {
			s.nextID = id + 1
		}
		s.subs = append(s.subs, &c)
	}
	return s
}

// List returns a snapshot of all subscriptions.
func (s *MemoryStore) List(_ context.Context) ([]*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		c := *sub
		out = append(out, &c)
	}
	return out, nil
}

// Ensure reconciles a detected fact against the store: an existing
// subscription with the same case-insensitive name and provider is
// returned unchanged, otherwise a new one is created from the fact.
func (s *MemoryStore) Ensure(_ context.Context, fact model.DetectedFact) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if strings.EqualFold(sub.Name, fact.Name) && strings.EqualFold(sub.Provider, fact.Provider) {
			c := *sub
			return &c, nil
		}
	}

	return s.createLocked(model.Subscription{
		Name:        fact.Name,
		Provider:    fact.Provider,
		Amount:      fact.Amount,
		NextBilling: fact.NextBilling,
		Status:      fact.Status,
	}), nil
}

// Create adds a subscription unconditionally. Unlike Ensure it performs
// no duplicate check; the manual and bank-import paths own that choice.
func (s *MemoryStore) Create(_ context.Context, sub model.Subscription) (*model.Subscription, error) {
	if sub.Name == "" || sub.Provider == "" || sub.NextBilling == "" {
		return nil, fmt.Errorf("%w: name, provider and nextBilling are required", common.ErrMissingField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(sub), nil
}

func (s *MemoryStore) createLocked(sub model.Subscription) *model.Subscription {
	if sub.ID == "" {
		sub.ID = strconv.FormatInt(s.nextID, 10)
		s.nextID++
	} else if id, err := strconv.ParseInt(sub.ID, 10, 64); err == nil && id >= s.nextID {
		s.nextID = id + 1
	}
	if sub.Amount < 0 {
		sub.Amount = 0
	}
	if sub.Status == "" {
		sub.Status = model.StatusActive
	}
	if sub.LastUsed == nil {
		now := s.now()
		sub.LastUsed = &now
	}

	s.subs = append(s.subs, &sub)
	c := sub
	return &c
}

// UpdateStatus sets the status of the identified subscription.
func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status model.Status) (*model.Subscription, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := s.findLocked(id)
	if sub == nil {
		return nil, common.ErrNotFound
	}
	sub.Status = status
	c := *sub
	return &c, nil
}

// Cancel marks the identified subscription cancelled. The record stays in
// the list; cancellation is a status transition, not a removal.
func (s *MemoryStore) Cancel(_ context.Context, id string) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := s.findLocked(id)
	if sub == nil {
		return nil, common.ErrNotFound
	}
	now := s.now()
	sub.Status = model.StatusCancelled
	sub.CancelledAt = &now
	c := *sub
	return &c, nil
}

// TouchUsage records that the identified subscription was just used.
func (s *MemoryStore) TouchUsage(_ context.Context, id string) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := s.findLocked(id)
	if sub == nil {
		return nil, common.ErrNotFound
	}
	now := s.now()
	sub.LastUsed = &now
	c := *sub
	return &c, nil
}

// Delete removes the identified subscription. It reports false when no
// subscription matched.
func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.subs[:0]
	removed := false
	for _, sub := range s.subs {
		if model.IDsEqual(sub.ID, id) {
			removed = true
			continue
		}
		kept = append(kept, sub)
	}
	s.subs = kept
	return removed, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) findLocked(id string) *model.Subscription {
	for _, sub := range s.subs {
		if model.IDsEqual(sub.ID, id) {
			return sub
		}
	}
	return nil
}
