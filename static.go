package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed static
var embeddedStatic embed.FS

const htmxFile = "htmx.min.js"

// layeredFS serves a file from the first layer that has it.
type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
	for _, layer := range l {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// staticAssets puts dir, when set, in front of the embedded assets so a
// deployment can add htmx or override the stylesheet.
func staticAssets(dir string) (fs.FS, error) {
	embedded, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return embedded, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static dir '%s' is not a directory", dir)
	}
	return layeredFS{os.DirFS(dir), embedded}, nil
}

func hasFile(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}
