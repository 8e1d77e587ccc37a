package wire

import (
	"bytes"
	"hash/fnv"
	"sync"
)

// decodeCache holds the single most recently decoded buffer's Field tree.
// A virtual-table scan or a query with several extract()/to_json() calls
// against the same blob column value in one row decodes it once and
// reuses the tree for every subsequent call against byte-identical
// input; anything else is a cache miss and gets redecoded from scratch.
//
// A single slot (rather than a full LRU) matches the access pattern this
// package actually sees: SQLite evaluates all scalar functions against
// one row before moving to the next, so the working set at any instant
// is exactly one buffer.
type decodeCache struct {
	mu sync.Mutex

	key    uint64
	keyLen int
	buf    []byte
	packed bool
	root   *Field

	hits   int64
	misses int64
}

var sharedDecodeCache decodeCache

// CacheStats reports the shared decode cache's hit/miss counters, mostly
// useful from tests.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// Stats returns the current hit/miss counts for the shared decode cache.
func Stats() CacheStats {
	sharedDecodeCache.mu.Lock()
	defer sharedDecodeCache.mu.Unlock()
	return CacheStats{Hits: sharedDecodeCache.hits, Misses: sharedDecodeCache.misses}
}

// ResetCache drops the cached decode tree, forcing the next DecodeCached
// call to redecode. Exposed for tests that need a clean slate.
func ResetCache() {
	sharedDecodeCache.mu.Lock()
	defer sharedDecodeCache.mu.Unlock()
	sharedDecodeCache.buf = nil
	sharedDecodeCache.root = nil
	sharedDecodeCache.hits = 0
	sharedDecodeCache.misses = 0
}

// DecodeCached is the cache-aware front door every SQL function should
// call instead of Decode directly: it decodes buf once and returns the
// same *Field tree for every subsequent call with byte-identical
// content. Only buffers of at most DecodeCacheWindowBytes are cached (a
// window of 0 or less means no bound); the cache decodes and keeps its
// own copy of the bytes, so the tree never aliases the caller's slice. A
// larger buffer empties the slot and is decoded without caching.
// It decodes with config.PackedByDefault.
//
// A caller whose original C++ counterpart hardcodes a specific packed
// argument rather than deferring to the decoder's own default — extract
// and foreach, both of which call decodeProtobuf(buffer, true) in
// protobuf_extract.cpp/protobuf_foreach.cpp regardless of config — should
// call DecodeCachedPacked instead.
func DecodeCached(buf []byte) *Field {
	return decodeCachedWithPacked(buf, config.PackedByDefault)
}

// DecodeCachedPacked is DecodeCached but always decodes with packed
// reinterpretation enabled, independent of config.PackedByDefault.
func DecodeCachedPacked(buf []byte) *Field {
	return decodeCachedWithPacked(buf, true)
}

func decodeCachedWithPacked(buf []byte, packed bool) *Field {
	key := windowedHash(buf)

	sharedDecodeCache.mu.Lock()
	defer sharedDecodeCache.mu.Unlock()

	if sharedDecodeCache.root != nil && sharedDecodeCache.key == key &&
		sharedDecodeCache.keyLen == len(buf) && sharedDecodeCache.packed == packed &&
		bytes.Equal(sharedDecodeCache.buf, buf) {
		sharedDecodeCache.hits++
		return sharedDecodeCache.root
	}

	sharedDecodeCache.misses++
	if window := config.DecodeCacheWindowBytes; window > 0 && len(buf) > window {
		sharedDecodeCache.buf = nil
		sharedDecodeCache.root = nil
		return Decode(buf, packed)
	}
	owned := append([]byte(nil), buf...)
	root := Decode(owned, packed)
	sharedDecodeCache.key = key
	sharedDecodeCache.keyLen = len(buf)
	sharedDecodeCache.buf = owned
	sharedDecodeCache.packed = packed
	sharedDecodeCache.root = root
	return root
}

// windowedHash hashes at most config.DecodeCacheWindowBytes bytes of buf:
// for buffers within the window it hashes everything, otherwise the
// leading and trailing halves of the window plus the true length, which
// is enough to make an accidental collision between two different large
// buffers vanishingly unlikely without paying to hash the whole thing.
func windowedHash(buf []byte) uint64 {
	h := fnv.New64a()
	window := config.DecodeCacheWindowBytes
	if window <= 0 || len(buf) <= window {
		h.Write(buf)
		return h.Sum64()
	}
	half := window / 2
	h.Write(buf[:half])
	h.Write(buf[len(buf)-half:])
	var lenBuf [8]byte
	n := len(buf)
	for i := 0; i < 8; i++ {
		lenBuf[i] = byte(n >> (8 * i))
	}
	h.Write(lenBuf[:])
	return h.Sum64()
}
