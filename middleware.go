package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

type Middleware = func(http.Handler) http.Handler

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withLogging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sr, r)
			logR(logger, r).Info(
				"request",
				"status", sr.status,
				"duration", time.Since(start),
			)
		})
	}
}

func withRecover(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logR(logger, r).Error("panic", "err", fmt.Sprint(rec))
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// withPreferences builds the request's preference handle over the page URL
// chosen by pageURL and stores it in the request context.
func (server *Server) withPreferences(pageURL func(*http.Request) *url.URL) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cd := server.newCommonData(w, r, pageURL(r))
			next.ServeHTTP(w, r.WithContext(WithCommonData(r.Context(), cd)))
		})
	}
}

// requestURL uses the request itself as the page, for full-page routes.
func requestURL(r *http.Request) *url.URL {
	return r.URL
}

// returnURL uses the "return" form or query value as the page, for actions
// and fragments posted from a page.
func returnURL(r *http.Request) *url.URL {
	return safeReturnURL(r.FormValue("return"))
}

func chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

func chainf(f http.HandlerFunc, m ...Middleware) http.Handler {
	return chain(f, m...)
}
