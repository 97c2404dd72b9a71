package prefs

import (
	"net/url"
	"strings"
)

// DefaultLanguageParam is the query parameter that mirrors the active language.
const DefaultLanguageParam = "lang"

// QueryState is a key-value view over one query parameter of a URL. Writes
// only change the in-memory URL; reflecting it in the browser is up to the
// caller.
type QueryState struct {
	path  string
	query url.Values
	key   string
}

// NewQueryState builds a query-backed state for key over u. A nil URL is
// treated as "/".
func NewQueryState(u *url.URL, key string) *QueryState {
	s := &QueryState{
		path:  "/",
		query: url.Values{},
		key:   strings.TrimSpace(key),
	}
	if s.key == "" {
		s.key = DefaultLanguageParam
	}
	if u != nil {
		if u.Path != "" {
			s.path = u.Path
		}
		s.query = u.Query()
	}
	return s
}

// Key returns the parameter name.
func (s *QueryState) Key() string {
	return s.key
}

// Get returns the first value of the parameter, or def when it is absent or
// empty.
func (s *QueryState) Get(def string) string {
	if v := s.query.Get(s.key); v != "" {
		return v
	}
	return def
}

// Set writes value, or removes the parameter entirely when value is empty.
func (s *QueryState) Set(value string) {
	if value == "" {
		s.query.Del(s.key)
		return
	}
	s.query.Set(s.key, value)
}

// URL returns the path and encoded query. Other parameters are preserved.
func (s *QueryState) URL() string {
	u := url.URL{Path: s.path, RawQuery: s.query.Encode()}
	return u.String()
}
