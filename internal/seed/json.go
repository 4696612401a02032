package seed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// EmbeddedSource loads the fixtures compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(ctx context.Context) (*Dataset, error) {
	sub, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		return nil, fmt.Errorf("open embedded fixtures: %w", err)
	}
	return loadFS(ctx, sub)
}

// DirSource loads <set>.json files from a directory on disk.
type DirSource struct {
	Dir string
}

func (s DirSource) Load(ctx context.Context) (*Dataset, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("open seed dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open seed dir: %s is not a directory", s.Dir)
	}
	return loadFS(ctx, os.DirFS(s.Dir))
}

// loadFS читает все наборы; файл вида {"<set>": [...]}, отсутствующий файл даёт пустой набор
func loadFS(ctx context.Context, fsys fs.FS) (*Dataset, error) {
	ds := &Dataset{}
	for _, set := range Sets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := fs.ReadFile(fsys, set+".json")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s fixtures: %w", set, err)
		}

		if err := decodeSet(ds, set, data); err != nil {
			return nil, err
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate fixtures: %w", err)
	}
	return ds, nil
}

func decodeSet(ds *Dataset, set string, data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s fixtures: %w", set, err)
	}

	raw, ok := doc[set]
	if !ok {
		return fmt.Errorf("decode %s fixtures: missing %q key", set, set)
	}

	target, err := ds.target(set)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s fixtures: %w", set, err)
	}
	return nil
}
