package main

import (
	"github.com/mathemist/chatprefs/ln"
	"github.com/mathemist/chatprefs/prefs"
)

// PageData is everything a full page needs from the preference handle,
// resolved once before rendering starts.
type PageData struct {
	Title              string
	Language           ln.Code
	T                  ln.Bundle
	Theme              prefs.Theme
	SuppressTransition bool
	// ThemeToggle is unresolved on first paint and mounted when the page is
	// re-rendered in response to a client action.
	ThemeToggle   prefs.Gate[prefs.Theme]
	PageURL       string
	LanguageParam string
	StaticPrefix  string
	HTMX          bool
	RepoURL       string
}
