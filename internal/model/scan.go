package model

import "time"

// ScanResult summarizes one batch scan of notification emails.
// Created holds each distinct subscription the batch reconciled to,
// reported once even when several emails resolved to the same record.
type ScanResult struct {
	Created  []*Subscription
	Scanned  int
	Detected int
}

// Charge is a recurring charge discovered on a bank statement. The bank
// import path turns charges into subscriptions via the store.
type Charge struct {
	Posted   time.Time
	Name     string
	Provider string
	Amount   float64
}
