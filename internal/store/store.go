package store

import (
	"context"
	"errors"

	"github.com/seantiz/mxm/internal/model"
)

// ErrNotFound is returned when no thread is cached under a key.
var ErrNotFound = errors.New("thread not found")

// CacheStats reports how much the thread cache holds.
type CacheStats struct {
	Threads  int `json:"threads"`
	Comments int `json:"comments"`
}

// Store caches generated comment threads by seed key. Entries are written
// once and never invalidated for the life of a session.
type Store interface {
	GetThread(ctx context.Context, key string) ([]model.Comment, error)
	// PutThread stores thread under key. A key that is already present keeps
	// its first value.
	PutThread(ctx context.Context, key string, thread []model.Comment) error
	Stats(ctx context.Context) (CacheStats, error)
	Close() error
}
