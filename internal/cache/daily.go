// Package cache holds process-wide values that are only good for one calendar day.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const dayLayout = "2006-01-02"

// Daily keeps a single value keyed by the current calendar day in loc.
// The value is loaded on first access and becomes stale when the date rolls over.
// Concurrent loads for the same day share one call.
type Daily[T any] struct {
	loc *time.Location
	now func() time.Time

	mu    sync.RWMutex
	day   string
	value T
	ok    bool

	group singleflight.Group
}

// NewDaily creates an empty cache. A nil now uses time.Now.
func NewDaily[T any](loc *time.Location, now func() time.Time) *Daily[T] {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Daily[T]{loc: loc, now: now}
}

// Today returns the key of the current calendar day, e.g. "2024-07-21".
func (c *Daily[T]) Today() string {
	return c.now().In(c.loc).Format(dayLayout)
}

// Get returns the value cached for today, if any.
func (c *Daily[T]) Get() (T, bool) {
	today := c.Today()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ok && c.day == today {
		return c.value, true
	}
	var zero T
	return zero, false
}

// Set stores v as today's value.
func (c *Daily[T]) Set(v T) {
	c.store(c.Today(), v)
}

// Invalidate drops the cached value.
func (c *Daily[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value, c.ok, c.day = zero, false, ""
}

// LoadTimeout bounds a shared load, which runs detached from the caller's cancellation.
const LoadTimeout = 30 * time.Second

// GetOrLoad returns today's value, calling load when there is none.
// A failed load leaves the cache untouched. A caller whose ctx ends stops
// waiting with ctx.Err() while the load carries on for everyone else.
func (c *Daily[T]) GetOrLoad(ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(); ok {
		return v, nil
	}

	var zero T
	today := c.Today()
	ch := c.group.DoChan(today, func() (interface{}, error) {
		if v, ok := c.Get(); ok {
			return v, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		c.store(today, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *Daily[T]) store(day string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day, c.value, c.ok = day, v, true
}
