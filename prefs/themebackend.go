package prefs

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/sessions"
)

const (
	// DefaultThemeAttribute is the document-root attribute carrying the theme.
	DefaultThemeAttribute = "data-theme"
	// DefaultThemeSessionName is the cookie session holding the theme.
	DefaultThemeSessionName = "theme"

	themeValueKey      = "theme"
	transitionFlashKey = "_theme_transition"
)

// ThemeOptions describe what a theme backend accepts.
type ThemeOptions struct {
	Attribute string
	Default   Theme
	Themes    []Theme
}

func (o ThemeOptions) normalized() ThemeOptions {
	if o.Attribute == "" {
		o.Attribute = DefaultThemeAttribute
	}
	if len(o.Themes) == 0 {
		o.Themes = ThemeValues()
	}
	if !slices.Contains(o.Themes, o.Default) {
		o.Default = o.Themes[0]
	}
	return o
}

// ThemeBackend persists the raw theme value and the one-shot transition
// suppression marker.
type ThemeBackend interface {
	Load() (string, bool)
	Store(name string)
	Options() ThemeOptions
	SuppressTransition()
	TakeTransitionSuppression() bool
}

// SessionThemeBackend keeps the theme in a cookie session. It is bound to a
// single request/response pair; every write saves the session immediately,
// so writes must happen before the response body is written.
type SessionThemeBackend struct {
	store   sessions.Store
	name    string
	opts    ThemeOptions
	w       http.ResponseWriter
	r       *http.Request
	onError func(error)
}

func NewSessionThemeBackend(store sessions.Store, name string, opts ThemeOptions, w http.ResponseWriter, r *http.Request) *SessionThemeBackend {
	if name == "" {
		name = DefaultThemeSessionName
	}
	return &SessionThemeBackend{
		store: store,
		name:  name,
		opts:  opts.normalized(),
		w:     w,
		r:     r,
	}
}

// OnError sets a callback for cookie decode and save failures. Failures never
// change what the store resolves to.
func (b *SessionThemeBackend) OnError(fn func(error)) {
	b.onError = fn
}

func (b *SessionThemeBackend) Options() ThemeOptions {
	return b.opts
}

func (b *SessionThemeBackend) Load() (string, bool) {
	sess := b.session()
	if sess == nil {
		return "", false
	}
	raw, ok := sess.Values[themeValueKey].(string)
	return raw, ok
}

func (b *SessionThemeBackend) Store(name string) {
	sess := b.session()
	if sess == nil {
		return
	}
	sess.Values[themeValueKey] = name
	b.save(sess)
}

func (b *SessionThemeBackend) SuppressTransition() {
	sess := b.session()
	if sess == nil {
		return
	}
	sess.Values[transitionFlashKey] = true
	b.save(sess)
}

func (b *SessionThemeBackend) TakeTransitionSuppression() bool {
	sess := b.session()
	if sess == nil {
		return false
	}
	pending, _ := sess.Values[transitionFlashKey].(bool)
	if !pending {
		return false
	}
	delete(sess.Values, transitionFlashKey)
	b.save(sess)
	return true
}

func (b *SessionThemeBackend) session() *sessions.Session {
	if b.store == nil || b.r == nil {
		return nil
	}
	sess, err := b.store.Get(b.r, b.name)
	if err != nil {
		// A cookie that fails to decode yields a fresh session; the theme
		// falls back to the default.
		b.report(fmt.Errorf("decoding theme session: %w", err))
	}
	return sess
}

func (b *SessionThemeBackend) save(sess *sessions.Session) {
	if b.w == nil {
		return
	}
	// Each save re-encodes the whole session, so only the latest cookie for
	// this session name may reach the client.
	dropSetCookie(b.w.Header(), b.name)
	if err := sess.Save(b.r, b.w); err != nil {
		b.report(fmt.Errorf("saving theme session: %w", err))
	}
}

func dropSetCookie(h http.Header, name string) {
	values := h.Values("Set-Cookie")
	if len(values) == 0 {
		return
	}
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if !strings.HasPrefix(v, name+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
}

func (b *SessionThemeBackend) report(err error) {
	if b.onError != nil {
		b.onError(err)
	}
}
