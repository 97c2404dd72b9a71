//go:generate go tool templ generate
package main

import (
	"net/url"

	"github.com/mathemist/chatprefs/ln"
	"github.com/mathemist/chatprefs/prefs"
)

// newThreadURL points at a fresh thread, keeping only the language mirror.
func newThreadURL(pageURL, langParam string) string {
	out := url.Values{}
	if v := safeReturnURL(pageURL).Query().Get(langParam); v != "" {
		out.Set(langParam, v)
	}
	return (&url.URL{Path: "/", RawQuery: out.Encode()}).String()
}

// themeToggleFragmentURL is where a placeholder fetches its resolved toggle.
func themeToggleFragmentURL(pageURL string) string {
	return "/fragments/theme-toggle?" + url.Values{"return": {pageURL}}.Encode()
}

// themeTooltip names the theme a click switches to, in the active language.
func themeTooltip(theme prefs.Theme, t ln.Bundle) string {
	if theme == prefs.ThemeBasalt {
		return t.SwitchToPaper
	}
	return t.SwitchToBasalt
}
