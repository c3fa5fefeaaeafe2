package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type fileRepository struct {
	path string
}

// NewFileCart keeps the snapshot in <dir>/<key>.json.
func NewFileCart(dir, key string) (port.CartRepository, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	return &fileRepository{
		path: filepath.Join(dir, key+".json"),
	}, nil
}

func (r *fileRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, port.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	items, err := UnmarshalSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("UnmarshalSnapshot: %w", err)
	}

	return items, nil
}

// Save writes to a temp file and renames it over the snapshot, so a failed
// write leaves the previous snapshot in place.
func (r *fileRepository) Save(ctx context.Context, items []domain.CartItem) (txErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := MarshalSnapshot(items)
	if err != nil {
		return fmt.Errorf("MarshalSnapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer func() {
		if txErr != nil {
			txErr = errors.Join(txErr, ignoreNotExist(os.Remove(tmp.Name())))
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func ignoreNotExist(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
