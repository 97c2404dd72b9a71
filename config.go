package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/mathemist/chatprefs/prefs"
)

// BuildKey versions the static asset path. Set with -ldflags at build time.
var BuildKey = "dev"

const envPrefix = "CHATPREFS_"

type Config struct {
	HTTP        HTTPConfig        `envPrefix:"HTTP_"`
	Session     SessionConfig     `envPrefix:"SESSION_"`
	Preferences PreferencesConfig `envPrefix:"PREFS_"`
	Log         LogConfig         `envPrefix:"LOG_"`
	RepoURL     string            `env:"REPO_URL"`
}

type HTTPConfig struct {
	URL                      string `env:"URL"`
	ReadTimeoutSeconds       int    `env:"READ_TIMEOUT_SECONDS"`
	ReadHeaderTimeoutSeconds int    `env:"READ_HEADER_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds      int    `env:"WRITE_TIMEOUT_SECONDS"`
	IdleTimeoutSeconds       int    `env:"IDLE_TIMEOUT_SECONDS"`
	ShutdownTimeoutSeconds   int    `env:"SHUTDOWN_TIMEOUT_SECONDS"`
	StaticDir                string `env:"STATIC_DIR"`
}

type SessionConfig struct {
	KeyLocation string `env:"KEY_LOCATION"`
	CookieName  string `env:"COOKIE_NAME"`
	Secure      bool   `env:"SECURE"`
	MaxAgeDays  int    `env:"MAX_AGE_DAYS"`
}

type PreferencesConfig struct {
	LanguageParam string `env:"LANGUAGE_PARAM"`
	DefaultTheme  string `env:"DEFAULT_THEME"`
	// Diagnostics logs persisted values that were silently replaced by a
	// default.
	Diagnostics bool `env:"DIAGNOSTICS"`
}

type LogConfig struct {
	Level  string `env:"LEVEL"`
	Format string `env:"FORMAT"`
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			URL:                      ":8080",
			ReadTimeoutSeconds:       10,
			ReadHeaderTimeoutSeconds: 5,
			WriteTimeoutSeconds:      10,
			IdleTimeoutSeconds:       60,
			ShutdownTimeoutSeconds:   5,
		},
		Session: SessionConfig{
			CookieName: prefs.DefaultThemeSessionName,
			Secure:     true,
			MaxAgeDays: 365,
		},
		Preferences: PreferencesConfig{
			LanguageParam: prefs.DefaultLanguageParam,
			DefaultTheme:  string(prefs.DefaultTheme),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		RepoURL: "https://github.com/mathemist/mathemist",
	}
}

// loadConfig reads file on top of the defaults, then applies CHATPREFS_*
// environment variables. A missing file is not an error.
func loadConfig(file string) (Config, error) {
	config := defaultConfig()

	raw, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config file '%s': %w", file, err)
	default:
		if err := json.Unmarshal(raw, &config); err != nil {
			return Config{}, fmt.Errorf("corrupted config file '%s': %w", file, err)
		}
	}

	if err := env.ParseWithOptions(&config, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTP.URL) == "" {
		errs = append(errs, errors.New("HTTP.URL is required"))
	}
	if strings.TrimSpace(c.Preferences.LanguageParam) == "" {
		errs = append(errs, errors.New("Preferences.LanguageParam is required"))
	}
	if _, err := prefs.ParseTheme(c.Preferences.DefaultTheme); err != nil {
		errs = append(errs, fmt.Errorf("Preferences.DefaultTheme: %w", err))
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		errs = append(errs, errors.New("Session.CookieName is required"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("Log.Level: %w", err))
	}
	switch c.Log.Format {
	case "auto", "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("Log.Format: unknown format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) DefaultTheme() prefs.Theme {
	t, err := prefs.ParseTheme(c.Preferences.DefaultTheme)
	if err != nil {
		return prefs.DefaultTheme
	}
	return t
}
