// Package gmail implements the mail-fetch collaborator over the Gmail
// API. It only reads: messages are listed with a subscription-oriented
// query, fetched in full, and decoded into raw email records for the
// scanning pipeline. Obtaining credentials is the caller's problem.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/model"
	"github.com/Veraticus/subwatch/internal/service"
)

// subscriptionQuery narrows listing to billing-flavored mail before the
// classifier ever sees it.
const subscriptionQuery = "subject:(subscription OR renewal OR billing OR invoice OR payment OR receipt)"

// Client fetches notification emails from one Gmail account.
type Client struct {
	svc *gmailapi.Service
}

// NewClient builds a read-only Gmail client from a bearer token.
func NewClient(ctx context.Context, accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("gmail access token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Fetch lists up to max subscription-flavored messages and decodes each
// into a RawEmail. The listing call is retried with backoff; individual
// messages that cannot be fetched are logged and skipped rather than
// failing the whole batch.
func (c *Client) Fetch(ctx context.Context, max int) ([]model.RawEmail, error) {
	var list *gmailapi.ListMessagesResponse
	err := common.WithRetry(ctx, func() error {
		var listErr error
		list, listErr = c.svc.Users.Messages.List("me").
			Q(subscriptionQuery).
			MaxResults(int64(max)).
			Context(ctx).
			Do()
		return listErr
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	emails := make([]model.RawEmail, 0, len(list.Messages))
	for _, m := range list.Messages {
		full, err := c.svc.Users.Messages.Get("me", m.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			slog.Warn("Failed to fetch message", "id", m.Id, "error", err)
			continue
		}
		emails = append(emails, decodeMessage(full))
	}

	return emails, nil
}

// decodeMessage flattens a Gmail message into the subject, sender, body
// text, and timestamp the classifier works with.
func decodeMessage(msg *gmailapi.Message) model.RawEmail {
	var email model.RawEmail

	if msg.Payload == nil {
		return email
	}

	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			email.Subject = h.Value
		case "From":
			email.Sender = h.Value
		case "Date":
			if t, err := mail.ParseDate(h.Value); err == nil {
				email.Timestamp = t
			}
		}
	}

	email.Body = extractBody(msg.Payload)
	return email
}

// extractBody walks the MIME tree and concatenates every decodable text
// part. Gmail encodes part bodies as web-safe base64.
func extractBody(part *gmailapi.MessagePart) string {
	if part == nil {
		return ""
	}

	if part.Body != nil && part.Body.Data != "" {
		decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			decoded, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		}
		if err == nil {
			return string(decoded)
		}
		return ""
	}

	var body string
	for _, p := range part.Parts {
		if text := extractBody(p); text != "" {
			if body != "" {
				body += "\n"
			}
			body += text
		}
	}
	return body
}
