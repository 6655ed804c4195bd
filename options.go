package treexml

import (
	"io"
	"log/slog"
)

// Option adjusts how ReadFrom folds an event stream into a tree.
type Option func(*config)

type config struct {
	logger *slog.Logger
	strict bool
}

// discardLogger drops all diagnostics.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger routes parse diagnostics to logger. Diagnostics never change
// control flow; without this option, or with a nil logger, they are
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithStrictNesting turns a closing tag without a matching opening tag into
// a parse failure. The default is to skip the event and log a warning.
func WithStrictNesting() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

func buildConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger
	}
	return cfg
}
