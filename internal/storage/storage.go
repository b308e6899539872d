// Package storage defines the key-value persistence contract used by the
// entity managers. Each collection maps an id to an opaque document.
package storage

import (
	"context"
	"errors"
)

// Collection names.
const (
	Teams  = "teams"
	Users  = "users"
	Boards = "boards"
	Tasks  = "tasks"
)

// ErrNotFound is returned by Get when the record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is a stored document with its id.
type Record struct {
	ID   string
	Body []byte
}

// Store persists documents grouped by collection.
type Store interface {
	// Get returns the document stored under id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) ([]byte, error)
	// Put inserts or replaces the document stored under id.
	Put(ctx context.Context, collection, id string, body []byte) error
	// List returns every document in the collection in insertion order.
	List(ctx context.Context, collection string) ([]Record, error)
	Close() error
}
