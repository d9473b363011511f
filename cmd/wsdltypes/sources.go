package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-wsdltypes/pkg/introspect"
)

// loadSources turns each --catalog path into an introspector. Directories are
// walked for catalog files; files holding a top level `openapi` key are read
// as OpenAPI documents.
func loadSources(ctx context.Context, logger *zap.Logger, paths []string) (introspect.Chain, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one --catalog is required")
	}

	loader := introspect.NewLoader(nil)
	chain := make(introspect.Chain, 0, len(paths))
	for _, raw := range paths {
		path := strings.TrimSpace(raw)
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}

		var catalog *introspect.Catalog
		if info.IsDir() {
			catalog, err = introspect.LoadFS(os.DirFS(path))
		} else {
			var doc introspect.Document
			doc, err = loader.Load(ctx, introspect.SourceFromFile(path))
			if err != nil {
				return nil, fmt.Errorf("catalog %s: %w", path, err)
			}
			catalog, err = introspect.LoadClasses(ctx, doc)
		}
		if err != nil {
			return nil, err
		}

		logger.Debug("loaded class source",
			zap.String("path", path),
			zap.Bool("directory", info.IsDir()),
			zap.Int("classes", len(catalog.Classes())))
		chain = append(chain, catalog)
	}
	return chain, nil
}
