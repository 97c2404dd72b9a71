package main

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

func newLogger(cfg LogConfig, w io.Writer, isTTY bool) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "chatprefs",
		ReportTimestamp: true,
	})

	switch cfg.Format {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	case "auto":
		if !isTTY {
			logger.SetFormatter(log.JSONFormatter)
		}
	}
	return logger, nil
}

// logR returns a logger carrying the request line.
func logR(logger *log.Logger, r *http.Request) *log.Logger {
	return logger.With("method", r.Method, "path", r.URL.Path)
}
