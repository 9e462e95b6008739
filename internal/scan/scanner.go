// Package scan drives a batch scan: classify each email, reconcile any
// detected fact into the store, and summarize what happened.
package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/subwatch/internal/classify"
	"github.com/Veraticus/subwatch/internal/model"
	"github.com/Veraticus/subwatch/internal/service"
)

// Scanner runs the detection-and-reconciliation pipeline over a batch of
// raw emails. Emails are processed strictly in input order, one at a
// time: reconciliation inspects state mutated by earlier iterations.
type Scanner struct {
	classifier *classify.Classifier
	store      service.Store

	// OnEmail, if set, is called after each email is processed. Used for
	// progress reporting.
	OnEmail func(done, total int)
}

// New creates a scanner over the given classifier and store.
func New(classifier *classify.Classifier, store service.Store) *Scanner {
	return &Scanner{classifier: classifier, store: store}
}

// Scan classifies every email in the batch and reconciles each detected
// fact through the store's Ensure path. Unrelated or unparseable emails
// are skipped silently. The returned Created list holds each distinct
// subscription the batch reconciled to, reported once even when several
// emails resolved to the same record.
func (s *Scanner) Scan(ctx context.Context, emails []model.RawEmail) (*model.ScanResult, error) {
	result := &model.ScanResult{
		Scanned: len(emails),
		Created: make([]*model.Subscription, 0),
	}
	seen := make(map[string]bool)

	for i, email := range emails {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fact := s.classifier.Classify(email)
		if fact != nil {
			result.Detected++

			sub, err := s.store.Ensure(ctx, *fact)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile %s: %w", fact.Name, err)
			}
			if !seen[sub.ID] {
				seen[sub.ID] = true
				result.Created = append(result.Created, sub)
			}
		}

		if s.OnEmail != nil {
			s.OnEmail(i+1, len(emails))
		}
	}

	slog.Info("Scan complete",
		"scanned", result.Scanned,
		"detected", result.Detected,
		"subscriptions", len(result.Created))

	return result, nil
}
