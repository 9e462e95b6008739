// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

// Store defines the contract for the subscription store.
//
// Ensure is the reconciliation path: a find-or-create keyed by
// case-insensitive (name, provider). It is the sole de-duplication guard
// in the scanning pipeline and must run for every detected fact. Create
// is unconditional and reserved for the manual and bank-import paths,
// which are allowed to produce duplicates.
//
// Lookup operations on a missing identifier return common.ErrNotFound
// (or false, for Delete); they never panic. Identifier matching accepts
// the numeric-string form of counter-assigned ids.
type Store interface {
	List(ctx context.Context) ([]*model.Subscription, error)
	Ensure(ctx context.Context, fact model.DetectedFact) (*model.Subscription, error)
	Create(ctx context.Context, sub model.Subscription) (*model.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Subscription, error)
	Cancel(ctx context.Context, id string) (*model.Subscription, error)
	TouchUsage(ctx context.Context, id string) (*model.Subscription, error)
	Delete(ctx context.Context, id string) (bool, error)
	Close() error
}

// MailFetcher supplies raw notification emails for a scan. Fetching is
// the external collaborator's concern; the scanning pipeline only sees
// the resulting records.
type MailFetcher interface {
	Fetch(ctx context.Context, max int) ([]model.RawEmail, error)
}

// RetryOptions configures retry behavior for calls to external services.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
