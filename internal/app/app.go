package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/wirebox"
	"github.com/vk/wirebox/internal/ctxlog"
	"github.com/vk/wirebox/manifest"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	container *wirebox.Container
	model     *manifest.Model
	config    *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and container.
// Builders and mutators registered in code may be passed in; any manifest
// declaration they do not cover is backed by a stub.
func NewApp(outW, logW io.Writer, cfg *Config, builders manifest.BuilderSet, mutators manifest.MutatorSet) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all manifests into the format-agnostic model first.
	loader := manifest.NewLoader()
	model, err := loader.LoadPaths(ctx, cfg.ManifestPath)
	if err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}
	logger.Debug("Manifests loaded and translated into unified model.",
		"products", len(model.Products), "late_inits", len(model.LateInits), "values", len(model.Values))

	// Back every declared builder and mutator that code did not supply
	// with a stub, so the graphs can be finalized and exported.
	builders, mutators = manifest.StubBuilders(model, builders, mutators)

	c := wirebox.New(wirebox.WithLogger(logger))
	if err := manifest.Apply(c, model, builders, mutators); err != nil {
		// A mismatch between manifests and registered code is a programmer
		// error, so we panic.
		panic(err)
	}
	logger.Debug("Container populated from manifest model.")

	return &App{
		outW:      outW,
		logger:    logger,
		container: c,
		model:     model,
		config:    cfg,
	}
}

// Container returns the application's container. This is primarily for testing.
func (a *App) Container() *wirebox.Container {
	return a.container
}
