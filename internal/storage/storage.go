// Package storage writes exported site files, either to a local directory or
// to an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bilgisen/spacetraveling/internal/logger"
)

// ErrInvalidKey is returned for keys that are empty or escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage stores files by slash-separated key.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Dir stores files under a local directory.
type Dir struct {
	basePath string
	mu       sync.RWMutex
}

func NewDir(basePath string) (*Dir, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Dir{basePath: basePath}, nil
}

// Path returns the root directory.
func (d *Dir) Path() string {
	return d.basePath
}

// Put writes data to key. The content type is implied by the extension.
func (d *Dir) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := d.resolve(key)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Get reads the file stored under key.
func (d *Dir) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := d.resolve(key)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// List returns every stored key in lexical order.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var keys []string
	err := filepath.WalkDir(d.basePath, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.basePath, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.basePath, err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (d *Dir) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" {
		return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
		}
	}
	return filepath.Join(d.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// ContentType guesses the MIME type of key from its extension.
func ContentType(key string) string {
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Publish copies every file in src to dst and returns how many were copied.
func Publish(ctx context.Context, src *Dir, dst Storage) (int, error) {
	log := logger.WithContext(ctx)

	keys, err := src.List(ctx)
	if err != nil {
		return 0, err
	}
	for i, key := range keys {
		data, err := src.Get(ctx, key)
		if err != nil {
			return i, err
		}
		if err := dst.Put(ctx, key, data, ContentType(key)); err != nil {
			return i, fmt.Errorf("failed to publish %s: %w", key, err)
		}
		log.Debug().Str("key", key).Int("bytes", len(data)).Msg("Published file")
	}
	return len(keys), nil
}
