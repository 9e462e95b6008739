package model

import "time"

// RawEmail is one notification email as delivered by a mail fetcher.
// It is never persisted; the classifier consumes it and moves on.
type RawEmail struct {
	Timestamp time.Time
	Subject   string
	Body      string
	Sender    string
}

// DetectedFact is the structured subscription data inferred from a single
// email. It is transient: the reconciler merges it into the store
// immediately and the fact itself is discarded.
type DetectedFact struct {
	Name        string
	Provider    string
	NextBilling string // YYYY-MM-DD
	Status      Status
	Amount      float64
}
