package catalog

// DefaultServices returns the built-in provider table. Order matters:
// "YouTube Premium" carries the bare "youtube" pattern itself, and the
// broad "du" pattern sits near the end so it cannot shadow more specific
// providers on emails that mention several services.
func DefaultServices() []ServicePattern {
	return []ServicePattern{
		{Name: "Netflix", Patterns: []string{`netflix`}, DefaultAmount: 55},
		{Name: "Spotify", Patterns: []string{`spotify`}, DefaultAmount: 25},
		{Name: "Adobe", Patterns: []string{`adobe`, `creative cloud`}, DefaultAmount: 120},
		{Name: "Amazon Prime", Patterns: []string{`amazon prime`, `prime video`}, DefaultAmount: 16},
		{Name: "Disney+", Patterns: []string{`disney\+`, `disney plus`}, DefaultAmount: 30},
		{Name: "Apple Music", Patterns: []string{`apple music`}, DefaultAmount: 20},
		{Name: "YouTube Premium", Patterns: []string{`youtube premium`, `youtube`}, DefaultAmount: 40},
		{Name: "Microsoft 365", Patterns: []string{`microsoft 365`, `office 365`}, DefaultAmount: 100},
		{Name: "Du", Patterns: []string{`du`, `du telecom`}, DefaultAmount: 299},
		{Name: "Etisalat", Patterns: []string{`etisalat`}, DefaultAmount: 150},
	}
}
