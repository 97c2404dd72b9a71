package ln

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func TestFromRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		want     Code
		wantKnow bool
	}{
		{raw: "", want: ZhCN, wantKnow: true},
		{raw: "zh-CN", want: ZhCN, wantKnow: true},
		{raw: "en-US", want: EnUS, wantKnow: true},
		{raw: "en-us", want: ZhCN, wantKnow: false},
		{raw: "en", want: ZhCN, wantKnow: false},
		{raw: " en-US", want: ZhCN, wantKnow: false},
		{raw: "fr-FR", want: ZhCN, wantKnow: false},
		{raw: "%%%", want: ZhCN, wantKnow: false},
	}
	for _, tc := range tests {
		got, known := FromRaw(tc.raw)
		if got != tc.want {
			t.Errorf("FromRaw(%q) = %q, want %q", tc.raw, got, tc.want)
		}
		if known != tc.wantKnow {
			t.Errorf("FromRaw(%q) known = %v, want %v", tc.raw, known, tc.wantKnow)
		}
	}
}

func TestParseCodeIsExact(t *testing.T) {
	t.Parallel()

	if got, err := ParseCode("en-US"); err != nil || got != EnUS {
		t.Fatalf("ParseCode(en-US) = %q, %v", got, err)
	}
	for _, raw := range []string{"en-us", "EN-US", "zh", ""} {
		if _, err := ParseCode(raw); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("ParseCode(%q) error = %v, want ErrInvalidCode", raw, err)
		}
		if Code(raw).IsValid() {
			t.Errorf("Code(%q).IsValid() = true", raw)
		}
	}
}

func TestCodeOtherIsInvolution(t *testing.T) {
	t.Parallel()

	for _, code := range CodeValues() {
		if code.Other() == code {
			t.Fatalf("%s.Other() = %s, want a different code", code, code)
		}
		if code.Other().Other() != code {
			t.Fatalf("%s.Other().Other() = %s, want %s", code, code.Other().Other(), code)
		}
	}
}

func TestCodeTag(t *testing.T) {
	t.Parallel()

	if got := EnUS.Tag().String(); got != "en-US" {
		t.Fatalf("EnUS.Tag() = %q, want %q", got, "en-US")
	}
	if got := Code("xx").Tag(); got != ZhCN.Tag() {
		t.Fatalf("unknown code tag = %v, want %v", got, ZhCN.Tag())
	}
}

func TestBundlesShareKeySet(t *testing.T) {
	t.Parallel()

	want := Keys()
	for _, code := range CodeValues() {
		b := Resolve(code)
		if b.Code != code {
			t.Fatalf("Resolve(%s).Code = %s", code, b.Code)
		}
		m := b.Map()
		got := make([]string, 0, len(m))
		for key, value := range m {
			got = append(got, key)
			if strings.TrimSpace(value) == "" {
				t.Errorf("bundle %s: key %q is empty", code, key)
			}
		}
		if len(got) != len(want) {
			t.Fatalf("bundle %s has %d keys, want %d", code, len(got), len(want))
		}
		for _, key := range want {
			if _, ok := m[key]; !ok {
				t.Errorf("bundle %s: missing key %q", code, key)
			}
		}
	}
}

func TestResolveBundles(t *testing.T) {
	t.Parallel()

	if got := Resolve(ZhCN).NewThread; got != "新对话线程" {
		t.Fatalf("zh-CN NewThread = %q", got)
	}
	if got := Resolve(EnUS).NewThread; got != "New thread" {
		t.Fatalf("en-US NewThread = %q", got)
	}
	if got := Resolve(Code("xx")); !reflect.DeepEqual(got, Resolve(Default)) {
		t.Fatalf("Resolve(unknown) did not fall back to default bundle")
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	t.Parallel()

	b := Resolve(EnUS)
	b.Send = "changed"
	if got := Resolve(EnUS).Send; got != "Send" {
		t.Fatalf("Resolve(EnUS).Send = %q after mutating a copy", got)
	}
}

func TestLoadRejectsIncompleteBundle(t *testing.T) {
	t.Parallel()

	fsys := completeFS()
	fsys["locales/en-US.yaml"] = &fstest.MapFile{Data: []byte(strings.Replace(
		string(fsys["locales/en-US.yaml"].Data), "send: \"Send\"\n", "", 1))}

	_, err := load(fsys)
	if err == nil || !strings.Contains(err.Error(), "send") {
		t.Fatalf("load() error = %v, want missing key send", err)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	fsys := completeFS()
	fsys["locales/zh-CN.yaml"].Data = append(fsys["locales/zh-CN.yaml"].Data, []byte("bogus: \"x\"\n")...)

	if _, err := load(fsys); err == nil {
		t.Fatal("load() error = nil, want unknown key error")
	}
}

func TestLoadRejectsOrphanLocale(t *testing.T) {
	t.Parallel()

	fsys := completeFS()
	fsys["locales/fr-FR.yaml"] = &fstest.MapFile{Data: fsys["locales/en-US.yaml"].Data}

	if _, err := load(fsys); err == nil {
		t.Fatal("load() error = nil, want orphan locale error")
	}
}

func TestLoadRejectsMissingLocale(t *testing.T) {
	t.Parallel()

	fsys := completeFS()
	delete(fsys, "locales/en-US.yaml")

	if _, err := load(fsys); err == nil {
		t.Fatal("load() error = nil, want missing locale error")
	}
}

func completeFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, code := range CodeValues() {
		p := "locales/" + string(code) + ".yaml"
		data, err := localeFS.ReadFile(p)
		if err != nil {
			panic(err)
		}
		fsys[p] = &fstest.MapFile{Data: data}
	}
	return fsys
}
