// Package alerts computes time-windowed alert views over the current
// subscription set. Both views are pure projections: nothing here
// touches the store.
package alerts

import (
	"math"
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

const (
	// LowUsageWindow is how long an active subscription may go unused
	// before it is flagged. The comparison is strict: a subscription last
	// used exactly fourteen days ago is not yet flagged.
	LowUsageWindow = 14 * 24 * time.Hour

	// RenewalWindow is how far ahead the upcoming-renewals view looks.
	// Both ends of the window are inclusive.
	RenewalWindow = 7 * 24 * time.Hour
)

// LowUsage returns the active subscriptions whose last recorded use is
// older than the low-usage window. Paused and cancelled subscriptions
// are never flagged, whatever their dates say.
func LowUsage(subs []*model.Subscription, now time.Time) []model.LowUsageAlert {
	out := make([]model.LowUsageAlert, 0)
	for _, sub := range subs {
		if sub.Status != model.StatusActive || sub.LastUsed == nil {
			continue
		}
		idle := now.Sub(*sub.LastUsed)
		if idle <= LowUsageWindow {
			continue
		}
		out = append(out, model.LowUsageAlert{
			ID:               sub.ID,
			Name:             sub.Name,
			Provider:         sub.Provider,
			Amount:           sub.Amount,
			LastUsed:         *sub.LastUsed,
			DaysSinceLastUse: int(idle.Hours() / 24),
		})
	}
	return out
}

// UpcomingRenewals returns the active and trial subscriptions whose next
// billing date falls between today and seven days from now, inclusive.
// The billing date is a calendar date, so the lower bound is compared at
// day granularity: a renewal dated today still counts even late in the
// day.
func UpcomingRenewals(subs []*model.Subscription, now time.Time) []model.RenewalAlert {
	today := startOfDay(now)
	horizon := now.Add(RenewalWindow)

	out := make([]model.RenewalAlert, 0)
	for _, sub := range subs {
		if sub.Status != model.StatusActive && sub.Status != model.StatusTrial {
			continue
		}
		next, err := time.ParseInLocation("2006-01-02", sub.NextBilling, time.UTC)
		if err != nil {
			continue
		}
		if next.Before(today) || next.After(horizon) {
			continue
		}
		days := int(math.Ceil(next.Sub(now).Hours() / 24))
		if days < 0 {
			days = 0
		}
		out = append(out, model.RenewalAlert{
			ID:               sub.ID,
			Name:             sub.Name,
			Provider:         sub.Provider,
			Amount:           sub.Amount,
			NextBilling:      sub.NextBilling,
			Status:           sub.Status,
			DaysUntilRenewal: days,
		})
	}
	return out
}

// Report computes both alert views in one pass.
func Report(subs []*model.Subscription, now time.Time) model.AlertReport {
	return model.AlertReport{
		LowUsage:         LowUsage(subs, now),
		UpcomingRenewals: UpcomingRenewals(subs, now),
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
