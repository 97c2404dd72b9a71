package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/securecookie"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	config := defaultConfig()
	config.Session.Secure = false
	server, err := newServer(config, discardLogger(), "test")
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	return server
}

// client replays the cookies the server sets, like a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	return &client{t: t, handler: newTestServer(t).Handler(), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(r *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		r.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) post(target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	c.t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		r.Header.Set(hxRequestHeader, "true")
	}
	return c.do(r)
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("body does not contain %q:\n%s", want, body)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Fatalf("body contains %q:\n%s", unwanted, body)
	}
}

func TestChatPageDefaultsToChinese(t *testing.T) {
	t.Parallel()

	w := newClient(t).get("/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Content-Language"); got != "zh-CN" {
		t.Fatalf("Content-Language = %q, want zh-CN", got)
	}
	body := w.Body.String()
	assertContains(t, body, `<html lang="zh-CN" data-theme="paper">`)
	assertContains(t, body, "新对话线程")
	assertContains(t, body, "Switch to English")
	assertContains(t, body, "theme-toggle-placeholder")
	assertNotContains(t, body, "theme-no-transition")
}

func TestChatPageLanguageFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		lang   string
		text   string
	}{
		{"/?lang=en-US", "en-US", "New thread"},
		{"/?lang=zh-CN", "zh-CN", "新对话线程"},
		{"/?lang=fr", "zh-CN", "新对话线程"},
		{"/?lang=en-us", "zh-CN", "新对话线程"},
		{"/?lang=", "zh-CN", "新对话线程"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			w := newClient(t).get(tt.target)
			if got := w.Header().Get("Content-Language"); got != tt.lang {
				t.Fatalf("Content-Language = %q, want %q", got, tt.lang)
			}
			assertContains(t, w.Body.String(), `<html lang="`+tt.lang+`"`)
			assertContains(t, w.Body.String(), tt.text)
		})
	}
}

func TestPostLanguageRedirectsToCanonicalURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		language string
		ret      string
		want     string
	}{
		{"default clears the param", "zh-CN", "/?lang=en-US", "/"},
		{"english sets the param", "en-US", "/", "/?lang=en-US"},
		{"unknown means default", "de-DE", "/?lang=en-US", "/"},
		{"other params survive", "en-US", "/?thread=42", "/?lang=en-US&thread=42"},
		{"foreign return is dropped", "en-US", "https://evil.example/", "/?lang=en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := newClient(t).post("/language", url.Values{"language": {tt.language}, "return": {tt.ret}}, false)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
			}
			if got := w.Header().Get("Location"); got != tt.want {
				t.Fatalf("Location = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanguageToggleRoundTrip(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	w := c.post("/language/toggle", url.Values{"return": {"/"}}, false)
	if got := w.Header().Get("Location"); got != "/?lang=en-US" {
		t.Fatalf("first toggle Location = %q, want /?lang=en-US", got)
	}
	w = c.post("/language/toggle", url.Values{"return": {"/?lang=en-US"}}, false)
	if got := w.Header().Get("Location"); got != "/" {
		t.Fatalf("second toggle Location = %q, want /", got)
	}
}

func TestLanguageToggleHTMXReplacesURL(t *testing.T) {
	t.Parallel()

	w := newClient(t).post("/language/toggle", url.Values{"return": {"/"}}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get(hxReplaceURLHeader); got != "/?lang=en-US" {
		t.Fatalf("%s = %q, want /?lang=en-US", hxReplaceURLHeader, got)
	}
	if got := w.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("Content-Language = %q, want en-US", got)
	}
	body := w.Body.String()
	assertContains(t, body, `id="app"`)
	assertContains(t, body, "切换到中文")
}

func TestLanguageToggleHTMXMountsThemeToggle(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	c.post("/theme/toggle", url.Values{"return": {"/"}}, false)
	w := c.post("/language/toggle", url.Values{"return": {"/"}}, true)

	// #app is swapped after load, so nothing would fetch a placeholder.
	body := w.Body.String()
	assertNotContains(t, body, "theme-toggle-placeholder")
	assertContains(t, body, `data-theme-current="basalt"`)
	assertContains(t, body, "Switch to paper")

	var trigger map[string]map[string]string
	if err := json.Unmarshal([]byte(w.Header().Get(hxTriggerHeader)), &trigger); err != nil {
		t.Fatalf("decoding %s: %v", hxTriggerHeader, err)
	}
	if got := trigger["languagechange"]["lang"]; got != "en-US" {
		t.Fatalf("languagechange lang = %q, want en-US", got)
	}

	w = c.post("/language/toggle", url.Values{"return": {"/?lang=en-US"}}, true)
	if err := json.Unmarshal([]byte(w.Header().Get(hxTriggerHeader)), &trigger); err != nil {
		t.Fatalf("decoding %s: %v", hxTriggerHeader, err)
	}
	if got := trigger["languagechange"]["lang"]; got != "zh-CN" {
		t.Fatalf("languagechange lang = %q, want zh-CN", got)
	}
}

func TestPageScriptIsServed(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	body := c.get("/").Body.String()
	assertContains(t, body, `<script src="/static/test/app.js" defer></script>`)
	assertContains(t, body, `data-mount="/fragments/theme-toggle?return=%2F"`)
	assertNotContains(t, body, "htmx.min.js")

	w := c.get("/static/test/app.js")
	if w.Code != http.StatusOK {
		t.Fatalf("app.js status = %d, want %d", w.Code, http.StatusOK)
	}
	assertContains(t, w.Body.String(), "data-mount")
	assertContains(t, w.Body.String(), "applyTheme")

	for _, asset := range []string{"app.css", "favicon.svg"} {
		if w := c.get("/static/test/" + asset); w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", asset, w.Code, http.StatusOK)
		}
	}
}

func TestStaticDirAddsHTMX(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, htmxFile), []byte("/* htmx */"), 0o600); err != nil {
		t.Fatal(err)
	}
	config := defaultConfig()
	config.Session.Secure = false
	config.HTTP.StaticDir = dir
	server, err := newServer(config, discardLogger(), "test")
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	if !server.HTMX {
		t.Fatal("HTMX = false with htmx.min.js in the static dir")
	}
	c := &client{t: t, handler: server.Handler(), cookies: map[string]*http.Cookie{}}

	assertContains(t, c.get("/").Body.String(), `<script src="/static/test/htmx.min.js" defer></script>`)
	if w := c.get("/static/test/htmx.min.js"); w.Code != http.StatusOK || w.Body.String() != "/* htmx */" {
		t.Fatalf("htmx.min.js = %d %q, want the file from the static dir", w.Code, w.Body.String())
	}
	// Embedded assets stay reachable behind the directory.
	if w := c.get("/static/test/app.js"); w.Code != http.StatusOK {
		t.Fatalf("app.js status = %d, want %d", w.Code, http.StatusOK)
	}

	config.HTTP.StaticDir = filepath.Join(dir, "missing")
	if _, err := newServer(config, discardLogger(), "test"); err == nil {
		t.Fatal("newServer() error = nil for a missing static dir")
	}
}

// signedThemeCookie encodes values the way the cookie store does, with the
// signature timestamp set to issued.
func signedThemeCookie(t *testing.T, key []byte, name string, values map[any]any, issued time.Time) string {
	t.Helper()
	serialized, err := securecookie.GobEncoder{}.Serialize(values)
	if err != nil {
		t.Fatal(err)
	}
	b := []byte(fmt.Sprintf("%s|%d|%s|", name, issued.Unix(), base64.URLEncoding.EncodeToString(serialized)))
	mac := hmac.New(sha256.New, key)
	mac.Write(b[:len(b)-1])
	b = append(b, mac.Sum(nil)...)[len(name)+1:]
	return base64.URLEncoding.EncodeToString(b)
}

func TestAgedThemeCookieWithinMaxAge(t *testing.T) {
	t.Parallel()

	key := []byte(strings.Repeat("k", sessionKeyLength))
	path := filepath.Join(t.TempDir(), "session.key")
	if err := os.WriteFile(path, key, 0o600); err != nil {
		t.Fatal(err)
	}
	config := defaultConfig()
	config.Session.Secure = false
	config.Session.KeyLocation = path
	server, err := newServer(config, discardLogger(), "test")
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"fresh", time.Hour, "basalt"},
		{"older than the codec default", 40 * 24 * time.Hour, "basalt"},
		{"expired", time.Duration(config.Session.MaxAgeDays+1) * 24 * time.Hour, "paper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			value := signedThemeCookie(t, key, config.Session.CookieName, map[any]any{"theme": "basalt"}, time.Now().Add(-tt.age))
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: config.Session.CookieName, Value: value})
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, r)
			assertContains(t, w.Body.String(), `data-theme="`+tt.want+`"`)
		})
	}
}

func TestThemeToggleFragmentIsResolved(t *testing.T) {
	t.Parallel()

	w := newClient(t).get("/fragments/theme-toggle?return=%2F%3Flang%3Den-US")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", got)
	}
	body := w.Body.String()
	assertNotContains(t, body, "theme-toggle-placeholder")
	assertContains(t, body, `data-theme-current="paper"`)
	assertContains(t, body, `title="Switch to basalt"`)
}

func TestThemeTogglePersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	w := c.post("/theme/toggle", url.Values{"return": {"/"}}, false)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
	if n := len(w.Result().Cookies()); n != 1 {
		t.Fatalf("toggle set %d cookies, want 1", n)
	}

	// The first render after the write suppresses transitions, later ones
	// don't.
	body := c.get("/").Body.String()
	assertContains(t, body, `data-theme="basalt"`)
	assertContains(t, body, `<style id="theme-no-transition">`)

	body = c.get("/").Body.String()
	assertContains(t, body, `data-theme="basalt"`)
	assertNotContains(t, body, "theme-no-transition")

	body = c.get("/fragments/theme-toggle?return=%2F").Body.String()
	assertContains(t, body, `data-theme-current="basalt"`)
	assertContains(t, body, "切换到纸张主题")
}

func TestThemeToggleHTMXTriggersSwap(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	for _, want := range []string{"basalt", "paper", "basalt"} {
		w := c.post("/theme/toggle", url.Values{"return": {"/"}}, true)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var trigger map[string]map[string]string
		if err := json.Unmarshal([]byte(w.Header().Get(hxTriggerHeader)), &trigger); err != nil {
			t.Fatalf("decoding %s: %v", hxTriggerHeader, err)
		}
		if got := trigger["themechange"]["value"]; got != want {
			t.Fatalf("themechange value = %q, want %q", got, want)
		}
		if got := trigger["themechange"]["attribute"]; got != "data-theme" {
			t.Fatalf("themechange attribute = %q, want data-theme", got)
		}

		body := w.Body.String()
		assertNotContains(t, body, "theme-toggle-placeholder")
		assertContains(t, body, `data-theme-current="`+want+`"`)
	}

	// The swap consumed the suppression flag.
	assertNotContains(t, c.get("/").Body.String(), "theme-no-transition")
}

func TestPostTheme(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	w := c.post("/theme", url.Values{"theme": {"neon"}, "return": {"/"}}, false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown theme status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = c.post("/theme", url.Values{"theme": {"basalt"}, "return": {"/?lang=en-US"}}, false)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != "/?lang=en-US" {
		t.Fatalf("Location = %q, want /?lang=en-US", got)
	}
	assertContains(t, c.get("/?lang=en-US").Body.String(), `data-theme="basalt"`)
}

func TestLanguageAndThemeAreIndependent(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	c.post("/theme/toggle", url.Values{"return": {"/"}}, false)
	c.post("/language/toggle", url.Values{"return": {"/"}}, false)

	body := c.get("/?lang=en-US").Body.String()
	assertContains(t, body, `<html lang="en-US" data-theme="basalt">`)
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	w := newClient(t).get("/nope?lang=en-US")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	body := w.Body.String()
	assertContains(t, body, "Page not found")
	assertContains(t, body, `href="/?lang=en-US"`)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	w := newClient(t).get("/healthz")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q, want 200 \"ok\"", w.Code, w.Body.String())
	}
}

func TestSafeReturnURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/?lang=en-US", "/?lang=en-US"},
		{"/threads/1?lang=en-US", "/threads/1?lang=en-US"},
		{"//evil.example/", "/"},
		{`/\evil.example`, "/"},
		{"https://evil.example/", "/"},
		{"javascript:alert(1)", "/"},
		{"threads", "/"},
	}
	for _, tt := range tests {
		if got := safeReturnURL(tt.raw).String(); got != tt.want {
			t.Errorf("safeReturnURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
