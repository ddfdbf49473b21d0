package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

// collection is a typed view over one stored JSON array.
type collection[T any] struct {
	st   store.Store
	name string
	log  *zap.Logger
}

func decode[T any](raw []byte) ([]T, error) {
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil { // stored "null"
		items = []T{}
	}
	return items, nil
}

// all returns every record. An unreadable document is logged and read as an
// empty collection.
func (c collection[T]) all(ctx context.Context) ([]T, error) {
	raw, err := c.st.Load(ctx, c.name)
	if err != nil {
		return nil, err
	}
	items, err := decode[T](raw)
	if err != nil {
		c.log.Warn("stored collection is unreadable, serving it as empty",
			zap.String("collection", c.name), zap.Error(err))
		return []T{}, nil
	}
	return items, nil
}

// mutate runs fn over the current records and stores what it returns, as one
// exclusive update.
func (c collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return c.st.Update(ctx, c.name, func(cur []byte) ([]byte, error) {
		items, err := decode[T](cur)
		if err != nil {
			c.log.Error("refusing to overwrite unreadable collection",
				zap.String("collection", c.name), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", c.name, ErrCorrupt)
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		return json.MarshalIndent(next, "", "  ")
	})
}
