package wire

import (
	"os"
	"strconv"
)

// Config controls the package's tunables. Defaults are conservative and
// match the sizes the original C++ extension effectively got "for free"
// from SQLite's own per-statement auxdata cache.
type Config struct {
	// DecodeCacheWindowBytes is the largest buffer (in bytes) whose decoded
	// Field tree is kept for byte-identity reuse; 0 or less means no bound. A
	// virtual-table scan that calls extract() repeatedly against the
	// same blob column value benefits most; unrelated blobs simply miss.
	DecodeCacheWindowBytes int

	// CallCacheSize bounds the number of distinct path literals
	// ParsePathCached memoizes, process-wide. Since go-sqlite3 doesn't expose
	// SQLite's native per-call auxdata slots, this substitutes a small LRU
	// keyed on the literal path string, which still amortizes the common case of
	// a fixed path argument evaluated once per row of a query.
	CallCacheSize int

	// PackedByDefault is the packed argument DecodeCached passes to Decode.
	// When true, GetSubField is allowed to fall back to packed-repeated
	// reinterpretation (see expandPackedSiblings) anywhere in the cached
	// tree once an ordinary repetition index comes up short; when false
	// (the default) that fallback never runs, and an indexing miss is
	// just a miss. Either way a Len field's opaque Value is always
	// available regardless of this setting — it only affects whether
	// "dig further for a packed element" is attempted at all.
	PackedByDefault bool
}

var config = Config{
	DecodeCacheWindowBytes: 4096,
	CallCacheSize:          256,
	PackedByDefault:        false,
}

// SetConfig replaces the package-wide configuration.
func SetConfig(c Config) { config = c }

// GetConfig returns the package's current configuration.
func GetConfig() Config { return config }

func init() {
	if v := os.Getenv("SQLITE_PROTOBUF_DECODE_CACHE_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			config.DecodeCacheWindowBytes = n
		}
	}
	if v := os.Getenv("SQLITE_PROTOBUF_CALL_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			config.CallCacheSize = n
		}
	}
	if v := os.Getenv("SQLITE_PROTOBUF_PACKED_BY_DEFAULT"); v == "1" || v == "true" {
		config.PackedByDefault = true
	}
}
