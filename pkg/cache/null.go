package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. It backs --no-cache and the server's
// "none" cache setting.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Name returns "null".
func (NullCache) Name() string { return "null" }

// Close does nothing.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
