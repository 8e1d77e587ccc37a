package wire

import (
	"sync"

	"github.com/andreasbell/sqlite-protobuf/internal/lru"
)

// pathCacheEntry is what callCache stores per distinct path literal: the
// parsed steps, or the parse error if the literal doesn't parse. Caching
// the error too means a call site that's handed a malformed path on
// every row doesn't reparse it every row either.
type pathCacheEntry struct {
	steps []PathStep
	err   error
}

var (
	callCacheMu sync.Mutex
	callCache   *lru.LRU[pathCacheEntry]
)

func init() {
	callCache = lru.New[pathCacheEntry](lru.Config[pathCacheEntry]{MaxSize: config.CallCacheSize})
}

// ParsePathCached is ParsePath with per-literal memoization: SQL queries
// overwhelmingly call extract() or foreach with a constant path argument
// evaluated once per row, so caching by the literal string amortizes the
// parse across the whole result set. This substitutes for the
// auxdata-based memoization spec.md's host environment assumes (see
// wire/callcache.go's package doc in SPEC_FULL.md §4.6); a miss just
// reparses, so correctness never depends on the cache being warm.
func ParsePathCached(path string) ([]PathStep, error) {
	callCacheMu.Lock()
	if entry, ok := callCache.Get(path); ok {
		callCacheMu.Unlock()
		return entry.steps, entry.err
	}
	callCacheMu.Unlock()

	steps, err := ParsePath(path)

	callCacheMu.Lock()
	callCache.Add(path, pathCacheEntry{steps: steps, err: err})
	callCacheMu.Unlock()

	return steps, err
}

// ResetCallCache drops all memoized path parses. Exposed for tests.
func ResetCallCache() {
	callCacheMu.Lock()
	defer callCacheMu.Unlock()
	callCache = lru.New[pathCacheEntry](lru.Config[pathCacheEntry]{MaxSize: config.CallCacheSize})
}
