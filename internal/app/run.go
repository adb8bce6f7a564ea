package app

import (
	"context"
	"fmt"

	"github.com/vk/dunegen/internal/ctxlog"
	"github.com/vk/dunegen/internal/dunegen"
)

// Run writes the dune rules for the configured flavor.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "flavor", a.config.Flavor)

	err := a.generator.WriteTo(ctx, a.outW, dunegen.Flavor(a.config.Flavor))
	if isBrokenPipe(err) {
		a.logger.Info("Output closed by reader, stopping.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
