package prefs

import "github.com/mathemist/chatprefs/ln"

// LanguageBackend persists the raw language value.
type LanguageBackend interface {
	Get(def string) string
	Set(value string)
}

// LanguageStore owns the active display language. The backend is a mirror:
// whatever it holds is re-resolved on every read, and a value the store does
// not recognize resolves to ln.Default.
type LanguageStore struct {
	backend   LanguageBackend
	fallback  func(raw string)
	reported  string
	listeners []func(ln.Code)
}

type LanguageOption func(*LanguageStore)

// WithLanguageFallbackHook registers fn to be called with any non-empty
// persisted value that was not recognized, once per value for the lifetime of
// the store. Resolution is unaffected.
func WithLanguageFallbackHook(fn func(raw string)) LanguageOption {
	return func(s *LanguageStore) {
		s.fallback = fn
	}
}

func NewLanguageStore(backend LanguageBackend, opts ...LanguageOption) *LanguageStore {
	s := &LanguageStore{backend: backend}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Language resolves the active language from the backend.
func (s *LanguageStore) Language() ln.Code {
	raw := s.backend.Get("")
	code, known := ln.FromRaw(raw)
	if !known && s.fallback != nil && raw != s.reported {
		s.reported = raw
		s.fallback(raw)
	}
	return code
}

// SetLanguage persists code. The default language is stored as an absent
// value, never spelled out.
func (s *LanguageStore) SetLanguage(code ln.Code) {
	if code == ln.Default || !code.IsValid() {
		s.backend.Set("")
	} else {
		s.backend.Set(string(code))
	}
	active := s.Language()
	for _, fn := range s.listeners {
		fn(active)
	}
}

// Toggle switches to the other language and returns it.
func (s *LanguageStore) Toggle() ln.Code {
	next := s.Language().Other()
	s.SetLanguage(next)
	return next
}

// Translations returns the bundle for the active language.
func (s *LanguageStore) Translations() ln.Bundle {
	return ln.Resolve(s.Language())
}

// OnChange registers fn to run after every write, once the backend holds the
// new value.
func (s *LanguageStore) OnChange(fn func(ln.Code)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}
