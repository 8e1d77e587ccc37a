// Package wire implements a schema-less decoder and query engine for the
// Protocol Buffers wire format. It never consults a compiled .proto
// schema: every operation works directly off tag bytes and wire types.
package wire

// WireType is one of the six tag suffixes defined by the protobuf wire
// format. Values other than the six below are never produced by the
// decoder and are rejected wherever they appear as input.
type WireType int32

const (
	Varint WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	I64    WireType = 1 // fixed64, sfixed64, double
	Len    WireType = 2 // string, bytes, embedded messages, packed repeated fields
	SGroup WireType = 3 // group start (deprecated)
	EGroup WireType = 4 // group end (deprecated)
	I32    WireType = 5 // fixed32, sfixed32, float
)

// validWireType reports whether w is one of the six defined wire types.
func validWireType(w WireType) bool {
	return w >= Varint && w <= I32
}

const tagBits = 3

// Tag is the raw (field_number<<3)|wire_type value that precedes every
// field on the wire.
type Tag uint32

// MakeTag packs a field number and wire type into a Tag.
func MakeTag(fieldNumber uint32, wireType WireType) Tag {
	return Tag(fieldNumber<<tagBits) | Tag(wireType)
}

// ParseTag splits a Tag into its field number and wire type.
func ParseTag(tag Tag) (fieldNumber uint32, wireType WireType) {
	return uint32(tag) >> tagBits, WireType(tag & 0x7)
}

// LogicalType names how a caller wants a value slice interpreted. It has
// no relationship to any .proto type system; it is purely a conversion
// selector for the typed accessors in accessor.go.
type LogicalType string

const (
	Buffer   LogicalType = ""
	String   LogicalType = "string"
	Bytes    LogicalType = "bytes"
	Int32    LogicalType = "int32"
	Int64    LogicalType = "int64"
	Uint32   LogicalType = "uint32"
	Uint64   LogicalType = "uint64"
	Sint32   LogicalType = "sint32"
	Sint64   LogicalType = "sint64"
	Bool     LogicalType = "bool"
	Enum     LogicalType = "enum"
	Fixed64  LogicalType = "fixed64"
	Sfixed64 LogicalType = "sfixed64"
	Double   LogicalType = "double"
	Fixed32  LogicalType = "fixed32"
	Sfixed32 LogicalType = "sfixed32"
	Float    LogicalType = "float"
	Unknown  LogicalType = "unknown"
)

// logicalTypes is the string table ParseLogicalType accepts; it is also
// what makes the empty string resolve to Buffer rather than being
// rejected.
var logicalTypes = map[string]LogicalType{
	"":         Buffer,
	"string":   String,
	"bytes":    Bytes,
	"int32":    Int32,
	"int64":    Int64,
	"uint32":   Uint32,
	"uint64":   Uint64,
	"sint32":   Sint32,
	"sint64":   Sint64,
	"bool":     Bool,
	"enum":     Enum,
	"fixed64":  Fixed64,
	"sfixed64": Sfixed64,
	"double":   Double,
	"fixed32":  Fixed32,
	"sfixed32": Sfixed32,
	"float":    Float,
}

// ParseLogicalType resolves a type string from the extract() SQL surface
// into a LogicalType, reporting ok=false for anything not in the table.
func ParseLogicalType(s string) (LogicalType, bool) {
	lt, ok := logicalTypes[s]
	return lt, ok
}

// lastStepWireTypes returns the wire types tried, in order, when
// resolving the final step of a path for the given LogicalType.
func lastStepWireTypes(lt LogicalType) []WireType {
	switch lt {
	case Buffer:
		return []WireType{Len, SGroup, Varint, I64, I32}
	case String, Bytes:
		return []WireType{Len}
	case Int32, Int64, Uint32, Uint64, Sint32, Sint64, Bool, Enum:
		return []WireType{Varint}
	case Fixed64, Sfixed64, Double:
		return []WireType{I64}
	case Fixed32, Sfixed32, Float:
		return []WireType{I32}
	default:
		return nil
	}
}
