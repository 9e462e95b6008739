package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/subwatch/internal/model"
)

var testNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func activeSub(id, name string, lastUsedDaysAgo int, nextBillingInDays int) *model.Subscription {
	used := testNow.AddDate(0, 0, -lastUsedDaysAgo)
	return &model.Subscription{
		ID:          id,
		Name:        name,
		Provider:    name,
		Amount:      50,
		Status:      model.StatusActive,
		LastUsed:    &used,
		NextBilling: testNow.AddDate(0, 0, nextBillingInDays).Format("2006-01-02"),
	}
}

func TestLowUsage(t *testing.T) {
	tests := []struct {
		name        string
		lastUsed    int // days ago
		status      model.Status
		wantFlagged bool
	}{
		{name: "used recently", lastUsed: 5, status: model.StatusActive, wantFlagged: false},
		{name: "exactly fourteen days is not flagged", lastUsed: 14, status: model.StatusActive, wantFlagged: false},
		{name: "fifteen days is flagged", lastUsed: 15, status: model.StatusActive, wantFlagged: true},
		{name: "month-old usage is flagged", lastUsed: 30, status: model.StatusActive, wantFlagged: true},
		{name: "paused is never flagged", lastUsed: 30, status: model.StatusPaused, wantFlagged: false},
		{name: "cancelled is never flagged", lastUsed: 30, status: model.StatusCancelled, wantFlagged: false},
		{name: "trial is never flagged", lastUsed: 30, status: model.StatusTrial, wantFlagged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := activeSub("1", "Netflix", tt.lastUsed, 20)
			sub.Status = tt.status

			got := LowUsage([]*model.Subscription{sub}, testNow)
			if tt.wantFlagged {
				require.Len(t, got, 1)
				assert.Equal(t, tt.lastUsed, got[0].DaysSinceLastUse)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestLowUsageSkipsUnknownUsage(t *testing.T) {
	sub := activeSub("1", "Netflix", 30, 20)
	sub.LastUsed = nil

	got := LowUsage([]*model.Subscription{sub}, testNow)
	assert.Empty(t, got, "no usage record means nothing to compare against")
}

func TestUpcomingRenewals(t *testing.T) {
	tests := []struct {
		name       string
		renewsIn   int // days from now
		status     model.Status
		wantListed bool
	}{
		{name: "renews today", renewsIn: 0, status: model.StatusActive, wantListed: true},
		{name: "renews tomorrow", renewsIn: 1, status: model.StatusActive, wantListed: true},
		{name: "renews on the seventh day", renewsIn: 7, status: model.StatusActive, wantListed: true},
		{name: "renews on the eighth day", renewsIn: 8, status: model.StatusActive, wantListed: false},
		{name: "renewed yesterday", renewsIn: -1, status: model.StatusActive, wantListed: false},
		{name: "trial renewals count", renewsIn: 3, status: model.StatusTrial, wantListed: true},
		{name: "paused is skipped", renewsIn: 3, status: model.StatusPaused, wantListed: false},
		{name: "cancelled is skipped", renewsIn: 3, status: model.StatusCancelled, wantListed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := activeSub("1", "Spotify", 1, tt.renewsIn)
			sub.Status = tt.status

			got := UpcomingRenewals([]*model.Subscription{sub}, testNow)
			if tt.wantListed {
				require.Len(t, got, 1)
				assert.Equal(t, sub.NextBilling, got[0].NextBilling)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestUpcomingRenewalsDaysUntil(t *testing.T) {
	sub := activeSub("1", "Spotify", 1, 3)

	got := UpcomingRenewals([]*model.Subscription{sub}, testNow)
	require.Len(t, got, 1)
	// testNow is midday, so the renewal is two and a half days out and
	// rounds up to three.
	assert.Equal(t, 3, got[0].DaysUntilRenewal)
}

func TestUpcomingRenewalsTodayClampsToZero(t *testing.T) {
	sub := activeSub("1", "Spotify", 1, 0)

	got := UpcomingRenewals([]*model.Subscription{sub}, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].DaysUntilRenewal)
}

func TestUpcomingRenewalsSkipsUnparseableDates(t *testing.T) {
	sub := activeSub("1", "Spotify", 1, 3)
	sub.NextBilling = "soon"

	got := UpcomingRenewals([]*model.Subscription{sub}, testNow)
	assert.Empty(t, got)
}

func TestReport(t *testing.T) {
	subs := []*model.Subscription{
		activeSub("1", "Netflix", 30, 20), // low usage
		activeSub("2", "Spotify", 2, 5),   // upcoming renewal
		activeSub("3", "Adobe", 3, 20),    // quiet
	}

	report := Report(subs, testNow)
	require.Len(t, report.LowUsage, 1)
	assert.Equal(t, "Netflix", report.LowUsage[0].Name)
	require.Len(t, report.UpcomingRenewals, 1)
	assert.Equal(t, "Spotify", report.UpcomingRenewals[0].Name)
}
