package gmail

import (
	"context"
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

// FixtureFetcher serves a canned set of realistic billing emails. It
// backs `scan --demo` and lets the pipeline be exercised end to end
// without a connected account.
type FixtureFetcher struct {
	now func() time.Time
}

// NewFixtureFetcher creates a fetcher over the built-in demo emails.
func NewFixtureFetcher() *FixtureFetcher {
	return &FixtureFetcher{now: time.Now}
}

// Fetch returns up to max demo emails.
func (f *FixtureFetcher) Fetch(_ context.Context, max int) ([]model.RawEmail, error) {
	emails := DemoEmails(f.now())
	if max > 0 && max < len(emails) {
		emails = emails[:max]
	}
	return emails, nil
}

// DemoEmails returns sample billing notifications shaped like the real
// thing: mixed date formats, mixed phrasing, one per provider.
func DemoEmails(now time.Time) []model.RawEmail {
	return []model.RawEmail{
		{
			Subject:   "Your Netflix subscription has been renewed",
			Body:      "Thank you for your payment of AED 55.00. Your next billing date is February 15, 2024.",
			Sender:    "billing@netflix.com",
			Timestamp: now,
		},
		{
			Subject:   "Spotify Premium - Payment Receipt",
			Body:      "You've been charged AED 25.00 for your Spotify Premium subscription. Next billing: 02/20/2024",
			Sender:    "noreply@spotify.com",
			Timestamp: now,
		},
		{
			Subject:   "Adobe Creative Cloud Invoice",
			Body:      "Your monthly subscription payment of AED 120.00 has been processed. Renewal date: 2024-02-25",
			Sender:    "adobe@adobe.com",
			Timestamp: now,
		},
		{
			Subject:   "Amazon Prime Membership Renewal",
			Body:      "Your Amazon Prime membership has been renewed. Amount charged: AED 16.00. Next renewal: March 1, 2024",
			Sender:    "auto-confirm@amazon.ae",
			Timestamp: now,
		},
		{
			Subject:   "Disney+ Subscription Payment",
			Body:      "Payment successful: AED 30.00. Your Disney+ subscription will renew on 02/18/2024",
			Sender:    "disneyplus@disney.com",
			Timestamp: now,
		},
	}
}
