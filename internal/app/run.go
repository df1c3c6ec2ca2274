package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/wirebox"
	"github.com/vk/wirebox/internal/ctxlog"
	"github.com/vk/wirebox/viz"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Check {
		a.logger.Debug("Running stub build to validate the graphs.")
		if err := a.container.Build(ctx); err != nil {
			var cycleErr *wirebox.CycleError
			if errors.As(err, &cycleErr) {
				for _, cycle := range cycleErr.Cycles {
					a.logger.Error("Dependency cycle detected.",
						"late_init", cycleErr.LateInit, "cycle", cycle)
				}
			}
			return fmt.Errorf("graph validation failed: %w", err)
		}
		a.logger.Info("Graph validation passed.", "products", len(a.container.Products()))
	}

	snap, err := a.container.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot graphs: %w", err)
	}
	bundle := viz.FromSnapshot(a.config.Name, snap)
	a.logger.Debug("Snapshot taken.",
		"vertices", len(bundle.Construction.Vertices), "render_hash", bundle.Metadata.RenderHash)

	out := a.outW
	if a.config.Out != "" {
		f, err := os.Create(a.config.Out)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := a.export(bundle, out); err != nil {
		return fmt.Errorf("failed to export graph bundle: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) export(bundle *viz.Bundle, out io.Writer) error {
	switch a.config.Export {
	case "dot":
		return bundle.WriteDOT(out)
	default:
		return bundle.WriteJSON(out)
	}
}
