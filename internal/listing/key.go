package listing

import (
	"net/url"
	"strings"
)

// QueryKey is the cache identity of one list request. Query holds the
// canonical URL encoding (keys sorted), so filter insertion order never
// influences equality. QueryKey is comparable and safe as a map key.
type QueryKey struct {
	Screen string
	Locale string
	Query  string
}

// NewQueryKey derives the key for a screen's effective query in a locale.
func NewQueryKey(screen, locale string, query url.Values) QueryKey {
	return QueryKey{
		Screen: screen,
		Locale: strings.ToLower(strings.TrimSpace(locale)),
		Query:  query.Encode(),
	}
}

// Values decodes the query back into parameters.
func (k QueryKey) Values() url.Values {
	v, err := url.ParseQuery(k.Query)
	if err != nil {
		return url.Values{}
	}
	return v
}

// HasScreen reports whether the key belongs to the given screen; used for
// invalidation by prefix.
func (k QueryKey) HasScreen(screen string) bool { return k.Screen == screen }

func (k QueryKey) String() string {
	return k.Screen + "?" + k.Query + "#" + k.Locale
}
