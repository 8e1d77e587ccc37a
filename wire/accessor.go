package wire

import "math"

// AsLogicalType converts f's raw wire bytes into the Go value requested by
// lt. It reports ok=false if f's wire type cannot carry lt (for instance,
// asking for "double" on a Varint field), or if f is nil.
//
// Buffer returns f.Value unmodified regardless of wire type; every other
// LogicalType requires f.WireType to be one of lastStepWireTypes(lt).
func AsLogicalType(f *Field, lt LogicalType) (value interface{}, ok bool) {
	if f == nil {
		return nil, false
	}
	if lt == Buffer {
		return f.Value, true
	}

	allowed := lastStepWireTypes(lt)
	if !wireTypeIn(f.WireType, allowed) {
		return nil, false
	}

	switch lt {
	case String:
		return string(f.Value), true
	case Bytes:
		return f.Value, true
	case Int32:
		v, ok := decodeFieldVarint(f)
		return int32(v), ok
	case Int64:
		v, ok := decodeFieldVarint(f)
		return int64(v), ok
	case Uint32:
		v, ok := decodeFieldVarint(f)
		return uint32(v), ok
	case Uint64:
		v, ok := decodeFieldVarint(f)
		if ok && v > math.MaxInt64 {
			warnUnsignedOverflow(v)
		}
		return v, ok
	case Sint32:
		v, ok := decodeFieldVarint(f)
		return DecodeZigZag32(v), ok
	case Sint64:
		v, ok := decodeFieldVarint(f)
		return DecodeZigZag64(v), ok
	case Bool:
		v, ok := decodeFieldVarint(f)
		return v != 0, ok
	case Enum:
		v, ok := decodeFieldVarint(f)
		return int32(v), ok
	case Fixed64:
		v := decodeFixed64LE(f.Value)
		if v > math.MaxInt64 {
			warnUnsignedOverflow(v)
		}
		return v, true
	case Sfixed64:
		return int64(decodeFixed64LE(f.Value)), true
	case Double:
		return math.Float64frombits(decodeFixed64LE(f.Value)), true
	case Fixed32:
		return decodeFixed32LE(f.Value), true
	case Sfixed32:
		return int32(decodeFixed32LE(f.Value)), true
	case Float:
		return math.Float32frombits(decodeFixed32LE(f.Value)), true
	}
	return nil, false
}

func wireTypeIn(wt WireType, set []WireType) bool {
	for _, s := range set {
		if wt == s {
			return true
		}
	}
	return false
}

func decodeFieldVarint(f *Field) (uint64, bool) {
	v, rest, ok := ReadVarint(f.Value, maxVarint64Bytes)
	if !ok || len(rest) != 0 {
		return 0, false
	}
	return v, true
}

func decodeFixed32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func decodeFixed64LE(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
