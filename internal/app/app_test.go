package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/wirebox/internal/app"
	"github.com/vk/wirebox/viz"
)

func writeManifest(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))
	return path
}

const sampleGraph = `
value "retry_limit" {
  value = 3
}

product "keychain" {}

product "session" {
  requires = ["keychain", "retry_limit"]
  kind     = "adapter"
}

late_init "session" {
  requires = ["keychain"]
}
`

func TestAppExportsJSONBundle(t *testing.T) {
	path := writeManifest(t, sampleGraph)
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Name:         "sample",
		Export:       "json",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	a := app.NewApp(out, logs, cfg, nil, nil)
	require.NoError(t, a.Run(context.Background()))

	var bundle viz.Bundle
	require.NoError(t, json.Unmarshal(out.Bytes(), &bundle))
	assert.Equal(t, "sample", bundle.Metadata.Name)
	assert.NotEmpty(t, bundle.Metadata.RenderHash)
	assert.Len(t, bundle.Construction.Vertices, 3)
	assert.Len(t, bundle.Construction.Edges, 2)
	assert.Len(t, bundle.LateInit.Edges, 1)
}

func TestAppExportsDOT(t *testing.T) {
	path := writeManifest(t, sampleGraph)
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Name:         "sample",
		Export:       "dot",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := app.NewApp(out, &bytes.Buffer{}, cfg, nil, nil)
	require.NoError(t, a.Run(context.Background()))

	dot := out.String()
	assert.Contains(t, dot, `digraph "sample" {`)
	assert.Contains(t, dot, `"\"keychain\"" -> "\"session\"";`)
	assert.Contains(t, dot, `[style=dashed]`)
}

func TestAppWritesToFile(t *testing.T) {
	path := writeManifest(t, sampleGraph)
	outPath := filepath.Join(t.TempDir(), "bundle.json")
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Export:       "json",
		Out:          outPath,
		LogLevel:     "error",
	})
	require.NoError(t, err)

	a := app.NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil, nil)
	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var bundle viz.Bundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Equal(t, "wirebox", bundle.Metadata.Name)
}

func TestAppCheckBuildsStubGraph(t *testing.T) {
	path := writeManifest(t, sampleGraph)
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Export:       "json",
		Check:        true,
		LogLevel:     "error",
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := app.NewApp(out, &bytes.Buffer{}, cfg, nil, nil)
	require.NoError(t, a.Run(context.Background()))
	assert.Len(t, a.Container().Products(), 3)
}

func TestAppCheckReportsCycle(t *testing.T) {
	path := writeManifest(t, `
product "a" {
  requires = ["b"]
}

product "b" {
  requires = ["a"]
}
`)
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Export:       "json",
		Check:        true,
		LogLevel:     "error",
	})
	require.NoError(t, err)

	a := app.NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil, nil)
	err = a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph validation failed")
}

func TestNewAppPanicsOnMissingManifest(t *testing.T) {
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: filepath.Join(t.TempDir(), "nope.hcl"),
		Export:       "json",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	assert.Panics(t, func() {
		app.NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil, nil)
	})
}

func TestNewConfigValidation(t *testing.T) {
	_, err := app.NewConfig(app.Config{Export: "json"})
	require.Error(t, err)

	_, err = app.NewConfig(app.Config{ManifestPath: "graph.hcl", Export: "svg"})
	require.Error(t, err)

	cfg, err := app.NewConfig(app.Config{ManifestPath: "graph.hcl", Export: "dot"})
	require.NoError(t, err)
	assert.Equal(t, "wirebox", cfg.Name)
}
