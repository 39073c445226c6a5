package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mmcdole/tvshelf/internal/domain"
)

// Driver names accepted by Open
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Backend is a key-value store that can be wiped and closed
type Backend interface {
	domain.KeyValueStore
	Reset(ctx context.Context) error
	Close() error
}

// Open creates the backend for driver rooted at dir
func Open(driver, dir string) (Backend, error) {
	switch driver {
	case DriverBolt, "":
		return NewBoltStore(dir)
	case DriverSQLite:
		return OpenSQLite(filepath.Join(dir, "tvshelf.sqlite"))
	case DriverMemory:
		return NewBoltStore("")
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}
