// Package prefs owns the user-facing language and theme preferences and
// their persistence mirrors.
package prefs

// Preferences is the handle passed to every component that reads or writes
// the active language or theme. It is built once per request at the root and
// is the only way consumers reach the two stores.
type Preferences struct {
	Language *LanguageStore
	Theme    *ThemeStore
}
