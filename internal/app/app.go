package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/dunegen/internal/ctxlog"
	"github.com/vk/dunegen/internal/dunegen"
	"github.com/vk/dunegen/internal/manifest"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	generator *dunegen.Generator
}

// NewApp builds an App writing generated lines to outW and logs to logW.
// The embedded rule manifest is decoded here, so a broken manifest fails
// before anything reaches outW.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	m, err := manifest.LoadDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule manifest: %w", err)
	}
	logger.Debug("Rule manifest loaded.", "artifacts", len(m.Artifacts))

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		generator: dunegen.New(m),
	}, nil
}
