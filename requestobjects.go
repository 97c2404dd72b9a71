package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mathemist/chatprefs/prefs"
)

type ctxKey int32

const (
	ctxKeyCommonData ctxKey = iota
)

func WithCommonData(ctx context.Context, cd *CommonData) context.Context {
	return context.WithValue(ctx, ctxKeyCommonData, cd)
}

func LoadCommonData(ctx context.Context) (*CommonData, error) {
	cd, ok := ctx.Value(ctxKeyCommonData).(*CommonData)
	if !ok {
		return nil, fmt.Errorf("no CommonData in ctx")
	}
	return cd, nil
}

func MustLoadCommonData(ctx context.Context) *CommonData {
	cd, err := LoadCommonData(ctx)
	if err != nil {
		panic(err)
	}
	return cd
}

// CommonData is what every handler of a request shares: the preference
// handle and the page URL the language is mirrored into.
type CommonData struct {
	Prefs *prefs.Preferences
	Page  *prefs.QueryState
	Log   *log.Logger
}

// PageURL is the current page URL, including any language change made while
// handling the request.
func (cd *CommonData) PageURL() string {
	return cd.Page.URL()
}

// safeReturnURL accepts only same-origin relative URLs. Anything else becomes
// "/".
func safeReturnURL(raw string) *url.URL {
	root := &url.URL{Path: "/"}
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return root
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return root
	}
	return &url.URL{Path: u.Path, RawQuery: u.RawQuery}
}
