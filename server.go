package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/mathemist/chatprefs/ln"
	"github.com/mathemist/chatprefs/prefs"
)

type Server struct {
	Sessions sessions.Store
	Logger   *log.Logger
	BuildKey string
	Config   Config
	Assets   fs.FS
	// HTMX is set when the assets include htmx.min.js.
	HTMX bool
}

// newServer wires the cookie store for the theme backend. An empty key
// location gets a random per-process key, so theme cookies do not survive a
// restart.
func newServer(config Config, logger *log.Logger, buildKey string) (*Server, error) {
	var sessionKey []byte
	if config.Session.KeyLocation == "" {
		logger.Warn("no session key configured, using an ephemeral key")
		sessionKey = securecookie.GenerateRandomKey(64)
		if sessionKey == nil {
			return nil, errors.New("generating ephemeral session key")
		}
	} else {
		var err error
		sessionKey, err = os.ReadFile(config.Session.KeyLocation)
		if err != nil {
			return nil, fmt.Errorf("reading session key: %w", err)
		}
	}

	cookies := sessions.NewCookieStore(sessionKey)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode
	cookies.Options.Secure = config.Session.Secure
	// Also bounds the signed timestamp the codecs accept.
	cookies.MaxAge(int((time.Duration(config.Session.MaxAgeDays) * 24 * time.Hour).Seconds()))

	assets, err := staticAssets(config.HTTP.StaticDir)
	if err != nil {
		return nil, err
	}
	htmx := hasFile(assets, htmxFile)
	if !htmx {
		logger.Info("htmx not found in static assets, placeholders mount through app.js", "file", htmxFile)
	}

	return &Server{
		Sessions: cookies,
		Logger:   logger,
		BuildKey: buildKey,
		Config:   config,
		Assets:   assets,
		HTMX:     htmx,
	}, nil
}

// newCommonData builds the preference handle for one request. page is the
// URL the language is mirrored into.
func (server *Server) newCommonData(w http.ResponseWriter, r *http.Request, page *url.URL) *CommonData {
	logger := logR(server.Logger, r)
	cfg := server.Config.Preferences

	var langOpts []prefs.LanguageOption
	var themeOpts []prefs.ThemeOption
	if cfg.Diagnostics {
		langOpts = append(langOpts, prefs.WithLanguageFallbackHook(func(raw string) {
			logger.Debug("unrecognized language value, using default", "raw", raw, "default", ln.Default)
		}))
		themeOpts = append(themeOpts, prefs.WithThemeFallbackHook(func(raw string) {
			logger.Debug("unrecognized theme value, using default", "raw", raw, "default", server.Config.DefaultTheme())
		}))
	}

	state := prefs.NewQueryState(page, cfg.LanguageParam)
	language := prefs.NewLanguageStore(state, langOpts...)
	language.OnChange(func(code ln.Code) {
		logger.Info("language changed", "language", code)
	})

	backend := prefs.NewSessionThemeBackend(server.Sessions, server.Config.Session.CookieName, prefs.ThemeOptions{
		Attribute: prefs.DefaultThemeAttribute,
		Default:   server.Config.DefaultTheme(),
		Themes:    prefs.ThemeValues(),
	}, w, r)
	backend.OnError(func(err error) {
		logger.Warn("theme session", "err", err)
	})
	theme := prefs.NewThemeStore(backend, themeOpts...)
	theme.OnChange(func(name prefs.Theme) {
		logger.Info("theme changed", "theme", name)
	})

	return &CommonData{
		Prefs: &prefs.Preferences{Language: language, Theme: theme},
		Page:  state,
		Log:   logger,
	}
}

func (server *Server) staticPrefix() string {
	return fmt.Sprintf("/static/%s/", server.BuildKey)
}

func (server *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	page := []Middleware{server.withPreferences(requestURL)}
	action := []Middleware{server.withPreferences(returnURL)}

	// Pages
	mux.Handle("GET /{$}", chainf(server.chatHandler, page...))
	// Language
	mux.Handle("POST /language", chainf(server.postLanguageHandler, action...))
	mux.Handle("POST /language/toggle", chainf(server.postLanguageToggleHandler, action...))
	// Theme
	mux.Handle("POST /theme", chainf(server.postThemeHandler, action...))
	mux.Handle("POST /theme/toggle", chainf(server.postThemeToggleHandler, action...))
	mux.Handle("GET /fragments/theme-toggle", chainf(server.themeToggleFragmentHandler, action...))
	// Static content
	staticDir := server.staticPrefix()
	mux.Handle("GET "+staticDir, http.StripPrefix(staticDir, http.FileServerFS(server.Assets)))
	mux.HandleFunc("GET /healthz", healthHandler)
	// Fallback
	mux.Handle("GET /", chainf(server.fourOhFourHandler, page...))

	return chain(mux, withRecover(server.Logger), withLogging(server.Logger))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (server *Server) ListenAndServe(ctx context.Context) error {
	cfg := server.Config.HTTP
	srv := &http.Server{
		Addr:              cfg.URL,
		Handler:           server.Handler(),
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	server.Logger.Info("listening", "addr", cfg.URL)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	}
}
