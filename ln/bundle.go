// Package ln holds the display languages and their translation bundles.
package ln

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bundle is the complete set of display strings for one language.
type Bundle struct {
	Code Code `yaml:"-"`

	LangName       string `yaml:"langName"`
	SwitchLanguage string `yaml:"switchLanguage"`

	OpenGitHubRepo string `yaml:"openGitHubRepo"`
	NewThread      string `yaml:"newThread"`
	SwitchToPaper  string `yaml:"switchToPaper"`
	SwitchToBasalt string `yaml:"switchToBasalt"`

	TypeYourMessage  string `yaml:"typeYourMessage"`
	UploadPdfOrImage string `yaml:"uploadPdfOrImage"`
	HideToolCalls    string `yaml:"hideToolCalls"`
	Cancel           string `yaml:"cancel"`
	Send             string `yaml:"send"`

	ScrollToBottom string `yaml:"scrollToBottom"`

	Loading  string `yaml:"loading"`
	NotFound string `yaml:"notFound"`
}

//go:embed locales/*.yaml
var localeFS embed.FS

var bundles = mustLoad(localeFS)

// Resolve returns the bundle for code. Unknown codes get the default bundle.
func Resolve(code Code) Bundle {
	if b, ok := bundles[code]; ok {
		return *b
	}
	return *bundles[Default]
}

// Keys returns the sorted translation keys every bundle must provide.
func Keys() []string {
	t := reflect.TypeOf(Bundle{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := yamlKey(t.Field(i)); key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Map returns the bundle's strings keyed by translation key.
func (b Bundle) Map() map[string]string {
	v := reflect.ValueOf(b)
	t := v.Type()
	out := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := yamlKey(t.Field(i)); key != "" {
			out[key] = v.Field(i).String()
		}
	}
	return out
}

func (b Bundle) missingKeys() []string {
	var missing []string
	for key, value := range b.Map() {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func yamlKey(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func load(fsys fs.FS) (map[Code]*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	for _, p := range paths {
		code := Code(strings.TrimSuffix(path.Base(p), ".yaml"))
		if !code.IsValid() {
			return nil, fmt.Errorf("locale file %s has no matching language code", p)
		}
	}

	codes := CodeValues()
	out := make(map[Code]*Bundle, len(codes))
	for _, code := range codes {
		p := "locales/" + string(code) + ".yaml"
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading bundle for %s: %w", code, err)
		}
		b, err := decodeBundle(raw)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", p, err)
		}
		b.Code = code
		out[code] = b
	}
	return out, nil
}

func decodeBundle(raw []byte) (*Bundle, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var b Bundle
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if missing := b.missingKeys(); len(missing) > 0 {
		return nil, fmt.Errorf("missing keys: %s", strings.Join(missing, ", "))
	}
	return &b, nil
}

func mustLoad(fsys fs.FS) map[Code]*Bundle {
	b, err := load(fsys)
	if err != nil {
		panic(err)
	}
	return b
}
