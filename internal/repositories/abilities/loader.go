package abilities

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// defaultData is the ability set shipped with the engine
//
//go:embed data/*.json
var defaultData embed.FS

// Decode reads one definitions file. source names it in errors.
func Decode(r io.Reader, source string) ([]*ability.Definition, error) {
	var file ability.FileDefinitions
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, abilerr.WrapWithCode(err, abilerr.CodeValidation, fmt.Sprintf("failed to parse %s", source)).
			WithMeta("source", source)
	}
	for i, def := range file.Abilities {
		if def == nil {
			return nil, abilerr.Validationf("%s: entry %d is null", source, i).WithMeta("source", source)
		}
	}
	return file.Abilities, nil
}

// LoadEmbedded decodes the default ability set
func LoadEmbedded(ctx context.Context) ([]*ability.Definition, error) {
	names, err := fs.Glob(defaultData, "data/*.json")
	if err != nil {
		return nil, abilerr.Wrap(err, "failed to list embedded ability data")
	}
	return loadAll(ctx, names, func(name string) (io.ReadCloser, error) {
		return defaultData.Open(path.Clean(name))
	})
}

// LoadFiles decodes every definitions file in paths. A directory
// contributes each *.json file directly inside it. Files are read in
// parallel but definitions come back in path order.
func LoadFiles(ctx context.Context, paths ...string) ([]*ability.Definition, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, abilerr.Wrapf(err, "failed to read ability data %s", p)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*.json"))
		if err != nil {
			return nil, abilerr.Wrapf(err, "failed to list ability data in %s", p)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, abilerr.InvalidArgument("no ability data files found")
	}

	return loadAll(ctx, files, func(name string) (io.ReadCloser, error) {
		return os.Open(name)
	})
}

func loadAll(ctx context.Context, names []string, open func(string) (io.ReadCloser, error)) ([]*ability.Definition, error) {
	results := make([][]*ability.Definition, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := open(name)
			if err != nil {
				return abilerr.Wrapf(err, "failed to open %s", name)
			}
			defer f.Close()

			defs, err := Decode(f, name)
			if err != nil {
				return err
			}
			results[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*ability.Definition
	for _, defs := range results {
		out = append(out, defs...)
	}
	return out, nil
}

// Config holds configuration for building a catalog
type Config struct {
	// Paths are definition files or directories; empty uses the embedded set
	Paths  []string
	Logger *zap.Logger
}

// Load builds a catalog and audits it. Warnings are logged; any error
// finding fails the load. The findings are returned either way.
func Load(ctx context.Context, cfg *Config) (Repository, []ability.Finding, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		defs []*ability.Definition
		err  error
	)
	if len(cfg.Paths) == 0 {
		defs, err = LoadEmbedded(ctx)
	} else {
		defs, err = LoadFiles(ctx, cfg.Paths...)
	}
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewInMemoryRepository(defs...)
	if err != nil {
		return nil, nil, err
	}

	findings := ability.Audit(defs)
	for _, f := range findings {
		fields := []zap.Field{zap.Int("ability", int(f.Ability)), zap.String("finding", f.Message)}
		if f.Severity == ability.SeverityError {
			logger.Error("ability data error", fields...)
		} else {
			logger.Warn("ability data warning", fields...)
		}
	}
	if ability.HasErrors(findings) {
		return nil, findings, abilerr.Validationf("ability data has %d problems", len(findings))
	}

	logger.Info("loaded ability catalog", zap.Int("abilities", len(defs)))
	return repo, findings, nil
}
