package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, 10, c.Len())
}

func TestIdentify(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		subject  string
		body     string
		wantName string
		wantNil  bool
	}{
		{
			name:     "matches provider in subject",
			subject:  "Your Netflix subscription has been renewed",
			body:     "",
			wantName: "Netflix",
		},
		{
			name:     "matches provider in body",
			subject:  "Payment receipt",
			body:     "You've been charged for your Spotify Premium subscription.",
			wantName: "Spotify",
		},
		{
			name:     "case insensitive",
			subject:  "YOUTUBE PREMIUM renewal",
			body:     "",
			wantName: "YouTube Premium",
		},
		{
			name:     "multi-word pattern",
			subject:  "Amazon Prime Membership Renewal",
			body:     "",
			wantName: "Amazon Prime",
		},
		{
			name:    "unknown provider",
			subject: "Your gym membership",
			body:    "Thanks for visiting!",
			wantNil: true,
		},
		{
			name:    "empty input",
			subject: "",
			body:    "",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := c.Identify(tt.subject, tt.body)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantName, svc.Name)
			assert.Equal(t, tt.wantName, svc.Provider)
		})
	}
}

func TestIdentifyFirstMatchWins(t *testing.T) {
	// Two entries whose patterns both match: declaration order decides.
	c, err := New([]ServicePattern{
		{Name: "Acme Video", Patterns: []string{"acme"}, DefaultAmount: 10},
		{Name: "Acme Music", Patterns: []string{"acme music"}, DefaultAmount: 20},
	})
	require.NoError(t, err)

	svc := c.Identify("Your Acme Music receipt", "")
	require.NotNil(t, svc)
	assert.Equal(t, "Acme Video", svc.Name, "earlier entry should shadow the later one")
}

func TestIdentifyCarriesDefaultAmount(t *testing.T) {
	c := Default()

	svc := c.Identify("Netflix billing", "")
	require.NotNil(t, svc)
	assert.InDelta(t, 55.0, svc.DefaultAmount, 0.001)
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New([]ServicePattern{
		{Name: "Broken", Patterns: []string{"("}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}
