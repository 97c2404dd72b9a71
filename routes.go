package main

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/mathemist/chatprefs/ln"
	"github.com/mathemist/chatprefs/prefs"
)

const pageTitle = "Mathemist"

// pageData resolves both stores once. Taking the transition flag here means
// only the first render after a theme write suppresses transitions.
func (server *Server) pageData(cd *CommonData) PageData {
	language := cd.Prefs.Language.Language()
	return PageData{
		Title:              pageTitle,
		Language:           language,
		T:                  ln.Resolve(language),
		Theme:              cd.Prefs.Theme.Theme(),
		SuppressTransition: cd.Prefs.Theme.TakeTransitionSuppression(),
		PageURL:            cd.PageURL(),
		LanguageParam:      cd.Page.Key(),
		StaticPrefix:       server.staticPrefix(),
		HTMX:               server.HTMX,
		RepoURL:            server.Config.RepoURL,
	}
}

func (server *Server) render(w http.ResponseWriter, r *http.Request, status int, data PageData, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", data.Language.Tag().String())
	w.Header().Set("Vary", "Cookie")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logR(server.Logger, r).Error("rendering", "err", err)
	}
}

func (server *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())
	data := server.pageData(cd)
	server.render(w, r, http.StatusOK, data, ChatPage(data))
}

func (server *Server) postLanguageHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())

	// Same resolution as the URL mirror: anything unknown means the default.
	code, known := ln.FromRaw(r.FormValue("language"))
	if !known {
		cd.Log.Debug("unrecognized language in form, using default", "raw", r.FormValue("language"))
	}
	cd.Prefs.Language.SetLanguage(code)
	server.respondLanguage(w, r, cd)
}

func (server *Server) postLanguageToggleHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())
	cd.Prefs.Language.Toggle()
	server.respondLanguage(w, r, cd)
}

// respondLanguage reflects the rewritten page URL without a navigation for
// HTMX clients and with a redirect for everyone else. The swapped #app is
// not the first paint, so its theme toggle is rendered mounted, and the
// languagechange event updates <html lang> which lies outside the swap.
func (server *Server) respondLanguage(w http.ResponseWriter, r *http.Request, cd *CommonData) {
	target := cd.PageURL()
	if !isHTMXRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	w.Header().Set(hxReplaceURLHeader, target)
	data := server.pageData(cd)
	data.ThemeToggle = prefs.Mounted(data.Theme)
	if err := setHXTrigger(w, "languagechange", map[string]string{
		"lang": data.Language.Tag().String(),
	}); err != nil {
		cd.Log.Error("encoding HX-Trigger", "err", err)
	}
	server.render(w, r, http.StatusOK, data, ChatPage(data))
}

func (server *Server) postThemeHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())

	theme, err := prefs.ParseTheme(r.FormValue("theme"))
	if err != nil {
		cd.Log.Warn("rejecting theme", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cd.Prefs.Theme.SetTheme(theme)
	server.respondTheme(w, r, cd)
}

func (server *Server) postThemeToggleHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())
	cd.Prefs.Theme.Toggle()
	server.respondTheme(w, r, cd)
}

// respondTheme answers a theme write. HTMX clients get the resolved toggle
// and a themechange event that swaps the root attribute with transitions
// off; the flag is consumed here since that swap is the render it guards.
func (server *Server) respondTheme(w http.ResponseWriter, r *http.Request, cd *CommonData) {
	if !isHTMXRequest(r) {
		http.Redirect(w, r, cd.PageURL(), http.StatusSeeOther)
		return
	}

	store := cd.Prefs.Theme
	store.TakeTransitionSuppression()
	theme := store.Theme()
	if err := setHXTrigger(w, "themechange", map[string]string{
		"attribute": store.Attribute(),
		"value":     string(theme),
	}); err != nil {
		cd.Log.Error("encoding HX-Trigger", "err", err)
	}
	server.renderToggle(w, r, cd, prefs.Mounted(theme))
}

// themeToggleFragmentHandler is the mount event of a theme toggle: the
// placeholder fetches it once and is replaced by resolved content.
func (server *Server) themeToggleFragmentHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())
	var gate prefs.Gate[prefs.Theme]
	gate.Mount(cd.Prefs.Theme.Theme())
	server.renderToggle(w, r, cd, gate)
}

func (server *Server) renderToggle(w http.ResponseWriter, r *http.Request, cd *CommonData, gate prefs.Gate[prefs.Theme]) {
	language := cd.Prefs.Language.Language()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", language.Tag().String())
	w.Header().Set("Cache-Control", "no-store")
	if err := ThemeToggle(gate, ln.Resolve(language), cd.PageURL()).Render(r.Context(), w); err != nil {
		cd.Log.Error("rendering theme toggle", "err", err)
	}
}

func (server *Server) fourOhFourHandler(w http.ResponseWriter, r *http.Request) {
	cd := MustLoadCommonData(r.Context())
	data := server.pageData(cd)
	server.render(w, r, http.StatusNotFound, data, NotFoundPage(data, r.URL.Path))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
