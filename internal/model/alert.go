package model

import "time"

// LowUsageAlert flags an active subscription that has not been used
// recently. It is a computed projection, never stored.
type LowUsageAlert struct {
	LastUsed         time.Time `json:"lastUsed"`
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Provider         string    `json:"provider"`
	Amount           float64   `json:"amount"`
	DaysSinceLastUse int       `json:"daysSinceLastUse"`
}

// RenewalAlert flags a subscription whose next billing date falls inside
// the forward-looking renewal window.
type RenewalAlert struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Provider         string  `json:"provider"`
	NextBilling      string  `json:"nextBilling"`
	Status           Status  `json:"status"`
	Amount           float64 `json:"amount"`
	DaysUntilRenewal int     `json:"daysUntilRenewal"`
}

// AlertReport bundles both alert views for one pass over the store.
type AlertReport struct {
	LowUsage         []LowUsageAlert `json:"lowUsage"`
	UpcomingRenewals []RenewalAlert  `json:"upcomingRenewals"`
}
