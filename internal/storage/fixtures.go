package storage

import (
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

// DemoSubscriptions returns the demo data set used by the seed command
// and tests: a spread of statuses and usage recency so both alert views
// have something to say.
func DemoSubscriptions(now time.Time) []model.Subscription {
	usedDaysAgo := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}

	return []model.Subscription{
		{
			ID:          "1",
			Name:        "Netflix Premium",
			Provider:    "Netflix",
			Amount:      55.0,
			NextBilling: now.AddDate(0, 0, 12).Format("2006-01-02"),
			Status:      model.StatusActive,
			LastUsed:    usedDaysAgo(5),
		},
		{
			ID:          "2",
			Name:        "Spotify Premium",
			Provider:    "Spotify",
			Amount:      25.0,
			NextBilling: now.AddDate(0, 0, 17).Format("2006-01-02"),
			Status:      model.StatusActive,
			LastUsed:    usedDaysAgo(2),
		},
		{
			ID:          "3",
			Name:        "Adobe Creative Cloud",
			Provider:    "Adobe",
			Amount:      120.0,
			NextBilling: now.AddDate(0, 0, 22).Format("2006-01-02"),
			Status:      model.StatusActive,
			LastUsed:    usedDaysAgo(30), // low usage
		},
		{
			ID:          "4",
			Name:        "Etisalat Mobile",
			Provider:    "Etisalat",
			Amount:      150.0,
			NextBilling: now.AddDate(0, 0, 5).Format("2006-01-02"),
			Status:      model.StatusActive,
			LastUsed:    usedDaysAgo(0),
		},
		{
			ID:          "5",
			Name:        "Starzplay",
			Provider:    "Starzplay",
			Amount:      35.0,
			NextBilling: now.AddDate(0, 0, 15).Format("2006-01-02"),
			Status:      model.StatusTrial,
			LastUsed:    usedDaysAgo(10),
		},
	}
}
