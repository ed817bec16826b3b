package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Document names of the four persisted collections.
const (
	DocRoutines   = "routines"
	DocProgress   = "progress"
	DocCategories = "categories"
	DocSettings   = "settings"
)

// Documents lists every collection in load order.
func Documents() []string {
	return []string{DocRoutines, DocProgress, DocCategories, DocSettings}
}

// Backend reads and overwrites whole JSON documents by name. Read returns
// ErrNotFound when the document has never been written.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}
