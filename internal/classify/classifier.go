// Package classify decides whether an email describes a subscription and,
// if so, which provider it concerns and on what terms.
package classify

import (
	"strings"
	"time"

	"github.com/Veraticus/subwatch/internal/catalog"
	"github.com/Veraticus/subwatch/internal/extract"
	"github.com/Veraticus/subwatch/internal/model"
)

// subscriptionKeywords gates classification: an email mentioning none of
// these is never treated as subscription-related, no matter what else it
// contains.
var subscriptionKeywords = []string{
	"subscription",
	"renewal",
	"billing",
	"payment",
	"invoice",
	"receipt",
	"charge",
	"auto-renew",
	"recurring",
}

// Classifier turns raw emails into detected subscription facts. It is a
// pure function of its input and the static catalog; the clock is
// injectable for tests.
type Classifier struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// New creates a classifier over the given catalog.
func New(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c, now: time.Now}
}

// NewWithClock creates a classifier with a fixed clock for tests.
func NewWithClock(c *catalog.Catalog, now func() time.Time) *Classifier {
	return &Classifier{catalog: c, now: now}
}

// Classify extracts a subscription fact from one email, or returns nil
// when the email is unrelated or mentions no known provider. Extraction
// failures are not errors: a missing amount falls back to the catalog
// default, and a missing date falls back to one calendar month after the
// email's timestamp (or after now, for emails without one).
func (c *Classifier) Classify(email model.RawEmail) *model.DetectedFact {
	text := strings.ToLower(email.Subject + " " + email.Body)

	related := false
	for _, kw := range subscriptionKeywords {
		if strings.Contains(text, kw) {
			related = true
			break
		}
	}
	if !related {
		return nil
	}

	svc := c.catalog.Identify(email.Subject, email.Body)
	if svc == nil {
		return nil
	}

	full := email.Subject + " " + email.Body

	amount, ok := extract.Amount(full)
	if !ok {
		amount = svc.DefaultAmount
	}

	nextBilling, ok := extract.Date(full)
	if !ok {
		base := email.Timestamp
		if base.IsZero() {
			base = c.now()
		}
		nextBilling = base.AddDate(0, 1, 0).Format("2006-01-02")
	}

	return &model.DetectedFact{
		Name:        svc.Name,
		Provider:    svc.Provider,
		Amount:      amount,
		NextBilling: nextBilling,
		Status:      model.StatusActive,
	}
}
