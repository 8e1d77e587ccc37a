// Package sqlfn implements the SQL-visible surface of the protobuf
// wire-format query engine: the extract() and to_json() scalar
// functions and the foreach/each virtual table, all built on top of the
// schema-less decoder in package wire. The pure evaluation logic lives
// in this package's non-cgo files so it can be tested without a cgo
// toolchain; registration against github.com/mattn/go-sqlite3 lives in
// the //go:build cgo file.
package sqlfn

import (
	"fmt"

	"github.com/andreasbell/sqlite-protobuf/wire"
)

// Extract evaluates path against blob's decoded field tree and converts
// the resolved field to typ. It returns (nil, nil) — not an error — when
// the path simply doesn't resolve, matching spec.md's "missing field"
// signal; a non-nil error means the path or type argument itself was
// malformed, which is the one class of host-visible error this function
// raises.
func Extract(blob []byte, path string, typ string) (interface{}, error) {
	steps, err := wire.ParsePathCached(path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	lt, ok := wire.ParseLogicalType(typ)
	if !ok {
		return nil, fmt.Errorf("extract: unknown type %q", typ)
	}

	root := wire.DecodeCachedPacked(blob)
	value, ok := wire.Evaluate(root, steps, lt)
	if !ok {
		return nil, nil
	}
	return sqliteValue(value), nil
}

// sqliteValue coerces AsLogicalType's Go-native return values into the
// handful of types database/sql/go-sqlite3 can bind as a query result:
// int64, float64, string, []byte, bool, or nil.
func sqliteValue(v interface{}) interface{} {
	switch t := v.(type) {
	case int32:
		return int64(t)
	case int64:
		return t
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	case bool:
		return t
	case string:
		return t
	case []byte:
		return t
	default:
		return v
	}
}
