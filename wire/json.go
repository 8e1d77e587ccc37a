package wire

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ToJSON renders f's children as a JSON object, one key per distinct tag
// (field number and wire type together) among f.SubFields, in
// first-appearance order. A field number that appears at two wire
// types — a LEN wrapper alongside the scalars expandPackedSiblings
// spliced next to it, for instance — renders as two separate keys rather
// than being merged under one, matching the original's tag-keyed
// subFieldMap. A tag that occurs exactly once renders as a single value;
// one that repeats renders as a JSON array of its occurrences, in wire
// order.
//
// When showType is true, each key is suffixed "_<wiretype>" (the numeric
// WireType value), matching the original extension's typed-key mode.
//
// A leaf field's value renders as: a signed decimal for Varint, a JSON
// number for I64 (reinterpreted as a double) and I32 (reinterpreted as a
// float), a JSON string for Len payloads that are valid UTF-8 printable
// text, base64 (within a JSON string) for Len payloads that aren't, and a
// nested object for Len/SGroup payloads that parsed as sub-messages.
func ToJSON(f *Field, showType bool) string {
	var b strings.Builder
	writeObject(&b, f, showType)
	return b.String()
}

func writeObject(b *strings.Builder, f *Field, showType bool) {
	ensureSubFields(f)
	order, groups := childrenByTag(f)

	b.WriteByte('{')
	for i, tag := range order {
		if i > 0 {
			b.WriteByte(',')
		}
		matches := groups[tag]
		fieldNumber, wireType := ParseTag(tag)
		writeKey(b, fieldNumber, wireType, showType)
		b.WriteByte(':')
		if len(matches) == 1 {
			writeValue(b, matches[0], showType)
			continue
		}
		b.WriteByte('[')
		for j, m := range matches {
			if j > 0 {
				b.WriteByte(',')
			}
			writeValue(b, m, showType)
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
}

func writeKey(b *strings.Builder, fieldNumber uint32, wt WireType, showType bool) {
	b.WriteByte('"')
	b.WriteString(strconv.FormatUint(uint64(fieldNumber), 10))
	if showType {
		b.WriteByte('_')
		b.WriteString(strconv.Itoa(int(wt)))
	}
	b.WriteByte('"')
}

func writeValue(b *strings.Builder, f *Field, showType bool) {
	switch f.WireType {
	case Varint:
		v, _ := decodeFieldVarint(f)
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case I32:
		b.WriteString(strconv.FormatFloat(float64(math.Float32frombits(decodeFixed32LE(f.Value))), 'g', -1, 32))
	case I64:
		b.WriteString(strconv.FormatFloat(math.Float64frombits(decodeFixed64LE(f.Value)), 'g', -1, 64))
	case Len, SGroup:
		ensureSubFields(f)
		if len(f.SubFields) > 0 || len(f.Value) == 0 {
			writeObject(b, f, showType)
			return
		}
		writeLenLeaf(b, f.Value)
	default:
		b.WriteString("null")
	}
}

func writeLenLeaf(b *strings.Builder, value []byte) {
	if utf8.Valid(value) && isPrintableText(value) {
		writeJSONString(b, string(value))
		return
	}
	writeJSONString(b, base64.StdEncoding.EncodeToString(value))
}

func isPrintableText(value []byte) bool {
	for _, r := range string(value) {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
