// Package catalog provides the static table of known subscription
// providers and text patterns used to recognize them in email content.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// ServicePattern describes one known provider: its canonical name, the
// text patterns that identify it, and the amount assumed when an email
// does not state one.
type ServicePattern struct {
	Name          string
	Patterns      []string
	DefaultAmount float64
}

// Service is a successful catalog lookup.
type Service struct {
	Name          string
	Provider      string
	DefaultAmount float64
}

type compiledService struct {
	patterns []*regexp.Regexp
	ServicePattern
}

// Catalog is an ordered, immutable provider table. Entries are tested in
// declaration order and the first match wins, so more specific entries
// must precede entries whose patterns would shadow them. Callers must not
// reorder the table without accepting a behavior change.
type Catalog struct {
	services []compiledService
}

// New compiles the given service patterns into a catalog, preserving
// their order.
func New(services []ServicePattern) (*Catalog, error) {
	compiled := make([]compiledService, 0, len(services))

	for _, svc := range services {
		cs := compiledService{ServicePattern: svc}
		for _, p := range svc.Patterns {
			if !strings.HasPrefix(p, "(?i)") {
				p = "(?i)" + p // Make case-insensitive by default
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("failed to compile pattern for %s: %w", svc.Name, err)
			}
			cs.patterns = append(cs.patterns, re)
		}
		compiled = append(compiled, cs)
	}

	return &Catalog{services: compiled}, nil
}

// Default returns a catalog built from DefaultServices.
func Default() *Catalog {
	c, err := New(DefaultServices())
	if err != nil {
		// The default table is static; a compile failure is a programming error.
		panic(fmt.Sprintf("default service catalog is invalid: %v", err))
	}
	return c
}

// Identify scans the subject and body for a known provider and returns the
// first table entry whose patterns match, or nil when no provider matches.
func (c *Catalog) Identify(subject, body string) *Service {
	text := strings.ToLower(subject + " " + body)

	for _, svc := range c.services {
		for _, re := range svc.patterns {
			if re.MatchString(text) {
				return &Service{
					Name:          svc.Name,
					Provider:      svc.Name,
					DefaultAmount: svc.DefaultAmount,
				}
			}
		}
	}

	return nil
}

// Len returns the number of services in the catalog.
func (c *Catalog) Len() int {
	return len(c.services)
}
