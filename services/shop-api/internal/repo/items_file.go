package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"purem-oda-shop/shared/pkg/models"
)

// ItemsFile keeps items as a pretty-printed JSON array in a single file.
type ItemsFile struct {
	Path string
}

func (s *ItemsFile) Load(_ context.Context) ([]models.Item, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return []models.Item{}, nil
	}
	var items []models.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path, err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Save writes to a temp file next to the target and renames it over, so
// readers see either the old or the new collection.
func (s *ItemsFile) Save(_ context.Context, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
