// Package model defines the core domain models used throughout the application.
package model

import (
	"strconv"
	"time"
)

// Status indicates the lifecycle state of a subscription.
type Status string

// Subscription status constants.
const (
	StatusActive    Status = "Active"
	StatusTrial     Status = "Trial"
	StatusPaused    Status = "Paused"
	StatusCancelled Status = "Cancelled"
)

// ValidStatus reports whether s is a recognized subscription status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusTrial, StatusPaused, StatusCancelled:
		return true
	default:
		return false
	}
}

// Subscription represents a single recurring service the user pays for.
// Cancellation is a status transition; the record stays in the store
// until explicitly deleted.
type Subscription struct {
	LastUsed    *time.Time `json:"lastUsed"`
	CancelledAt *time.Time `json:"cancelledAt"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Provider    string     `json:"provider"`
	NextBilling string     `json:"nextBilling"` // YYYY-MM-DD
	Status      Status     `json:"status"`
	Amount      float64    `json:"amount"`
}

// IDsEqual reports whether two subscription identifiers refer to the same
// record. Identifiers are opaque strings, but external callers may hand us
// the numeric-string form of a counter-assigned id, so "03" matches "3".
func IDsEqual(a, b string) bool {
	if a == b {
		return true
	}
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	return aerr == nil && berr == nil && ai == bi
}
