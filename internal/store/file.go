// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package store implements flat-file persistence: one JSON array per
// collection, read whole and written whole. Collection is the generic
// repository over a single file; Catalog layers the 5-minute TTL cache and
// cross-collection snapshot on top.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// ErrDataUnavailable tags storage read/parse failures. Callers treat it as
// fatal for the whole request; there is no partial recovery path.
var ErrDataUnavailable = errors.New("data unavailable")

// Collection is a whole-file JSON repository for one entity type.
//
// Save replaces the entire file; Mutate serializes read-modify-write
// sequences under a per-collection mutex so concurrent writers cannot lose
// updates. Reads outside Mutate are unsynchronized by design: the rename on
// save keeps them from ever observing a torn file.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

// NewCollection creates a repository backed by the JSON file at path.
func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Path returns the backing file path.
func (c *Collection[T]) Path() string { return c.path }

// Load reads and decodes the whole collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDataUnavailable, filepath.Base(c.path), err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDataUnavailable, filepath.Base(c.path), err)
	}
	return items, nil
}

// Save encodes and replaces the whole collection. The write goes to a
// temporary file in the same directory followed by a rename, so a crash
// mid-write never leaves a half-written collection behind.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(c.path), err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filepath.Base(c.path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(c.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", filepath.Base(c.path), err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(c.path), err)
	}
	return nil
}

// Mutate runs fn over the current collection contents and persists the
// result, all under the collection mutex. fn receives a fresh slice and
// returns the full replacement contents.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := fn(items)
	if err != nil {
		return nil, err
	}

	if err := c.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
