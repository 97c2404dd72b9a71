//go:generate go tool go-enum --no-iota --values --noprefix
package ln

import (
	"golang.org/x/text/language"
)

// Code identifies a display language.
// Adding a code requires a matching locales/<code>.yaml; the package refuses
// to initialize otherwise.
//
// ENUM(ZhCN=zh-CN, EnUS=en-US)
type Code string

// Default is the language used whenever nothing else has been chosen.
const Default = ZhCN

var tags = func() map[Code]language.Tag {
	out := make(map[Code]language.Tag, len(_CodeValue))
	for _, code := range CodeValues() {
		out[code] = language.MustParse(string(code))
	}
	return out
}()

// Tag returns the BCP 47 tag for the code, or the default's tag for an
// unknown code.
func (c Code) Tag() language.Tag {
	if tag, ok := tags[c]; ok {
		return tag
	}
	return tags[Default]
}

// Other returns the language the toggle switches to.
func (c Code) Other() Code {
	if c == Default {
		return EnUS
	}
	return Default
}

// FromRaw maps a persisted raw value to a code. Only the exact canonical
// string of a code selects it; everything else, including the empty string,
// lands on Default.
//
// The bool is false when raw was non-empty and not a known spelling. Callers
// may use it for diagnostics, but must not treat it as an error.
func FromRaw(raw string) (Code, bool) {
	code, err := ParseCode(raw)
	if err != nil {
		return Default, raw == ""
	}
	return code, true
}
