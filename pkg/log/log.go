// Package log builds the server logger from configuration.
package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
)

// NewLogger builds a logger from the log section of cfg. The returned
// file is non-nil when logs go to disk; closing it is up to the caller.
func NewLogger(cfg *config.Config) (*log.Logger, *os.File, error) {
	if cfg == nil {
		return nil, nil, config.ErrNilConfig
	}

	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.Log.TimeFormat,
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}

	out := os.Stderr
	var f *os.File
	if cfg.Log.Path != "" {
		var err error
		f, err = os.OpenFile(cfg.Log.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, nil, err //nolint:wrapcheck
		}
		out = f
	}

	logger := log.NewWithOptions(out, opts)
	if config.IsDebug() {
		logger.SetLevel(log.DebugLevel)
	}
	if config.IsVerbose() {
		logger.SetReportCaller(true)
	}

	return logger, f, nil
}
