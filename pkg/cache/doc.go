// Package cache stores pipeline results (graphs, layouts, rendered files)
// keyed by a hash of their inputs.
//
// # Backends
//
//   - [FileCache]: JSON files under the user cache directory, used by the CLI
//   - [MemoryCache]: bounded in-process LRU, the server default
//   - [RedisCache]: shared cache for several server replicas
//   - [NullCache]: caching disabled
//
// All backends implement [Cache]; a miss is (nil, false, nil).
//
// # Keys
//
// A [Keyer] turns stage inputs into keys. [DefaultKeyer] hashes the input hash
// together with the options that affect the result, so a layout computed with
// a different node width never collides with the cached one:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{Direction: "LR", NodeWidth: 180})
//
// [ScopedKeyer] prefixes every key to namespace a shared backend.
package cache
