package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/wirebox/internal/ctxlog"
	"github.com/vk/wirebox/internal/fsutil"
	"github.com/vk/wirebox/registry"
)

// Extension is the file suffix manifest discovery looks for.
const Extension = ".hcl"

// Loader parses manifest files into the agnostic Model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader returns a Loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadPaths discovers every manifest under the given paths (each a file
// or directory), parses them in deterministic order and merges the
// result into a single model.
func (l *Loader) LoadPaths(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx, nil)
	model := &Model{}
	for _, p := range paths {
		files, err := fsutil.FindByExtension(p, Extension)
		if err != nil {
			return nil, fmt.Errorf("manifest: discovering manifests under %s: %w", p, err)
		}
		logger.Debug("Manifest files discovered.", "path", p, "count", len(files))
		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("manifest: reading %s: %w", file, err)
			}
			parsed, err := l.LoadSource(file, src)
			if err != nil {
				return nil, err
			}
			model.merge(parsed)
		}
	}
	return model, nil
}

// LoadSource parses a single manifest from memory. The filename is used
// for diagnostics only.
func (l *Loader) LoadSource(filename string, src []byte) (*Model, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: parsing %s: %w", filename, diags)
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("manifest: decoding %s: %w", filename, diags)
	}

	return translate(filename, &raw)
}

// translate turns the HCL-shaped schema into the agnostic model, filling
// in defaults and converting literals.
func translate(filename string, raw *fileSchema) (*Model, error) {
	model := &Model{}
	for _, p := range raw.Products {
		kind, err := parseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("manifest: product %q in %s: %w", p.Name, filename, err)
		}
		builder := p.Builder
		if builder == "" {
			builder = p.Name
		}
		model.Products = append(model.Products, &Product{
			Name:     p.Name,
			Builder:  builder,
			Requires: append([]string(nil), p.Requires...),
			Kind:     kind,
		})
	}
	for _, li := range raw.LateInits {
		mutator := li.Mutator
		if mutator == "" {
			mutator = li.Name
		}
		model.LateInits = append(model.LateInits, &LateInitDecl{
			Name:     li.Name,
			Mutator:  mutator,
			Requires: append([]string(nil), li.Requires...),
		})
	}
	for _, v := range raw.Values {
		converted, err := ctyToGo(v.Value)
		if err != nil {
			return nil, fmt.Errorf("manifest: value %q in %s: %w", v.Name, filename, err)
		}
		model.Values = append(model.Values, &Value{Name: v.Name, Value: converted})
	}
	return model, nil
}

func parseKind(s string) (registry.Kind, error) {
	switch s {
	case "", "factory":
		return registry.KindFactory, nil
	case "startup_task":
		return registry.KindStartupTask, nil
	case "adapter":
		return registry.KindProtocolAdapter, nil
	default:
		return registry.KindFactory, fmt.Errorf("unknown kind %q (want factory, startup_task or adapter)", s)
	}
}
