package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"teamboard/internal/storage"
)

// collection is the resident copy of one stored collection. Records are
// loaded once and every successful save is written through to the store
// before the resident copy changes.
type collection[T any] struct {
	name  string
	store storage.Store
	items map[string]*T
	order []string
}

func loadCollection[T any](ctx context.Context, store storage.Store, name string) (*collection[T], error) {
	records, err := store.List(ctx, name)
	if err != nil {
		return nil, &StorageError{Op: "load " + name, Err: err}
	}

	c := &collection[T]{
		name:  name,
		store: store,
		items: make(map[string]*T, len(records)),
		order: make([]string, 0, len(records)),
	}
	for _, r := range records {
		v := new(T)
		if err := json.Unmarshal(r.Body, v); err != nil {
			return nil, &StorageError{Op: fmt.Sprintf("decode %s/%s", name, r.ID), Err: err}
		}
		if _, dup := c.items[r.ID]; !dup {
			c.order = append(c.order, r.ID)
		}
		c.items[r.ID] = v
	}
	return c, nil
}

func (c *collection[T]) get(id string) (*T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// all returns the records in insertion order.
func (c *collection[T]) all() []*T {
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// save persists v under id and then makes it the resident record. A failed
// write leaves the resident copy untouched.
func (c *collection[T]) save(ctx context.Context, id string, v *T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: fmt.Sprintf("encode %s/%s", c.name, id), Err: err}
	}
	if err := c.store.Put(ctx, c.name, id, body); err != nil {
		return &StorageError{Op: fmt.Sprintf("save %s/%s", c.name, id), Err: err}
	}
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
	return nil
}
