//go:generate go tool go-enum --no-iota --values
package prefs

import (
	"slices"
)

// Theme identifies a visual theme.
//
// ENUM(paper, basalt)
type Theme string

// DefaultTheme is used when the backend holds no recognized theme and no other
// default was configured.
const DefaultTheme = ThemePaper

// Other returns the theme the toggle switches to.
func (t Theme) Other() Theme {
	if t == ThemePaper {
		return ThemeBasalt
	}
	return ThemePaper
}

// ThemeStore owns the active theme. It never follows the operating system's
// light/dark signal; only explicit writes change it.
type ThemeStore struct {
	backend   ThemeBackend
	fallback  func(raw string)
	reported  string
	listeners []func(Theme)
}

type ThemeOption func(*ThemeStore)

// WithThemeFallbackHook registers fn to be called with any non-empty persisted
// value that was not recognized, once per value. Resolution is unaffected.
func WithThemeFallbackHook(fn func(raw string)) ThemeOption {
	return func(s *ThemeStore) {
		s.fallback = fn
	}
}

func NewThemeStore(backend ThemeBackend, opts ...ThemeOption) *ThemeStore {
	s := &ThemeStore{backend: backend}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Theme resolves the active theme from the backend.
func (s *ThemeStore) Theme() Theme {
	o := s.backend.Options()
	raw, ok := s.backend.Load()
	if ok && raw != "" {
		if t := Theme(raw); slices.Contains(o.Themes, t) {
			return t
		}
		if s.fallback != nil && raw != s.reported {
			s.reported = raw
			s.fallback(raw)
		}
	}
	return o.Default
}

// SetTheme persists name and arms transition suppression for the next render
// so the swap shows no cross-fade.
func (s *ThemeStore) SetTheme(name Theme) {
	o := s.backend.Options()
	if !slices.Contains(o.Themes, name) {
		name = o.Default
	}
	s.backend.SuppressTransition()
	s.backend.Store(string(name))
	for _, fn := range s.listeners {
		fn(name)
	}
}

// Toggle switches to the other theme and returns it.
func (s *ThemeStore) Toggle() Theme {
	next := s.Theme().Other()
	s.SetTheme(next)
	return next
}

// Attribute is the document-root attribute the theme is applied through.
func (s *ThemeStore) Attribute() string {
	return s.backend.Options().Attribute
}

// TakeTransitionSuppression reports whether a theme write is pending its
// first render, and clears the flag.
func (s *ThemeStore) TakeTransitionSuppression() bool {
	return s.backend.TakeTransitionSuppression()
}

// OnChange registers fn to run after every write.
func (s *ThemeStore) OnChange(fn func(Theme)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}
