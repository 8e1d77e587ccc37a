package wire

// Decode parses buf as a sequence of top-level protobuf fields and returns
// a synthetic root Field whose SubFields are those top-level fields. The
// root itself carries no tag or wire type of its own; FieldNumber and
// WireType are zero and meaningless.
//
// Decode never fails: bytes that don't parse as a valid field stream
// simply stop the scan early, keeping the fields decoded before that point
// (decodeSubFields, by contrast, keeps a nested payload's fields only when
// every byte of it parses). A caller who wants to know whether all of buf was consumed
// should compare the returned root's reconstructed length against
// len(buf), but nothing in this package needs that today.
//
// packed controls whether GetSubField and AllSubFields are allowed to run
// packed-repeated reinterpretation anywhere in the resulting tree (see
// expandPackedSiblings); it costs nothing up front either way, since the
// reinterpretation itself only ever runs lazily, on a GetSubField indexing
// miss or an AllSubFields call.
func Decode(buf []byte, packed bool) *Field {
	root := &Field{Value: buf, subParsed: true, packed: packed}
	root.SubFields = decodeFields(buf, packed)
	return root
}

// decodeFields scans buf as a flat sequence of tag-prefixed fields,
// stopping (without error) at the first byte it can't make sense of. It
// underlies Decode and the SGroup case of decodeOneField.
func decodeFields(buf []byte, packed bool) []*Field {
	fields, _ := decodeFieldsStrict(buf, packed)
	return fields
}

// decodeFieldsStrict is like decodeFields but also reports whether it
// consumed every byte of buf, which is what distinguishes "this LEN
// payload really is a sub-message" from "this LEN payload happens to
// start with plausible-looking tag bytes but is really an opaque string".
func decodeFieldsStrict(buf []byte, packed bool) (fields []*Field, consumedAll bool) {
	rest := buf
	for len(rest) > 0 {
		field, tail, ok := decodeOneField(rest, packed)
		if !ok || field.WireType == EGroup {
			return fields, false
		}
		fields = append(fields, field)
		rest = tail
	}
	return fields, true
}

// decodeOneField reads a single tag plus its payload from the front of
// buf, returning the decoded Field and whatever bytes follow it.
func decodeOneField(buf []byte, packed bool) (field *Field, rest []byte, ok bool) {
	rawTag, tail, ok := ReadVarint(buf, maxVarint32Bytes)
	if !ok || rawTag > 0xffffffff {
		return nil, nil, false
	}
	fieldNumber, wireType := ParseTag(Tag(rawTag))
	if fieldNumber == 0 || !validWireType(wireType) {
		return nil, nil, false
	}

	switch wireType {
	case Varint:
		_, tail2, ok := ReadVarint(tail, maxVarint64Bytes)
		if !ok {
			return nil, nil, false
		}
		value := tail[:len(tail)-len(tail2)]
		return &Field{FieldNumber: fieldNumber, WireType: wireType, Value: value, packed: packed}, tail2, true

	case I32:
		if len(tail) < 4 {
			return nil, nil, false
		}
		return &Field{FieldNumber: fieldNumber, WireType: wireType, Value: tail[:4], packed: packed}, tail[4:], true

	case I64:
		if len(tail) < 8 {
			return nil, nil, false
		}
		return &Field{FieldNumber: fieldNumber, WireType: wireType, Value: tail[:8], packed: packed}, tail[8:], true

	case Len:
		length, tail2, ok := ReadVarint(tail, maxVarint64Bytes)
		if !ok || length > uint64(len(tail2)) {
			return nil, nil, false
		}
		value := tail2[:length]
		return &Field{FieldNumber: fieldNumber, WireType: wireType, Value: value, packed: packed}, tail2[length:], true

	case SGroup:
		body, tail2, ok := decodeGroupBody(tail, fieldNumber)
		if !ok {
			return nil, nil, false
		}
		f := &Field{FieldNumber: fieldNumber, WireType: SGroup, Value: body, packed: packed}
		f.SubFields = decodeFields(body, packed)
		f.subParsed = true
		return f, tail2, true

	case EGroup:
		return &Field{FieldNumber: fieldNumber, WireType: EGroup, packed: packed}, tail, true
	}

	return nil, nil, false
}

// decodeGroupBody consumes a deprecated SGROUP/EGROUP pair, returning the
// bytes between them (the group's body) and the bytes following the
// matching EGROUP. Groups nested with the same field number are balanced
// by a depth counter over re-parsed tags.
func decodeGroupBody(buf []byte, fieldNumber uint32) (body []byte, rest []byte, ok bool) {
	depth := 1
	cursor := buf
	for {
		rawTag, tail, ok := ReadVarint(cursor, maxVarint32Bytes)
		if !ok {
			return nil, nil, false
		}
		num, wt := ParseTag(Tag(rawTag))

		if wt == SGroup && num == fieldNumber {
			depth++
			cursor = tail
			continue
		}
		if wt == EGroup && num == fieldNumber {
			depth--
			if depth == 0 {
				return buf[:len(buf)-len(cursor)], tail, true
			}
			cursor = tail
			continue
		}

		_, tail2, ok := skipPayload(tail, wt)
		if !ok {
			return nil, nil, false
		}
		cursor = tail2
	}
}

// skipPayload advances past the payload belonging to wire type wt, whose
// tag has already been consumed (buf is positioned right after it).
func skipPayload(buf []byte, wt WireType) (skipped, rest []byte, ok bool) {
	switch wt {
	case Varint:
		_, tail, ok := ReadVarint(buf, maxVarint64Bytes)
		return nil, tail, ok
	case I32:
		if len(buf) < 4 {
			return nil, nil, false
		}
		return nil, buf[4:], true
	case I64:
		if len(buf) < 8 {
			return nil, nil, false
		}
		return nil, buf[8:], true
	case Len:
		length, tail, ok := ReadVarint(buf, maxVarint64Bytes)
		if !ok || length > uint64(len(tail)) {
			return nil, nil, false
		}
		return nil, tail[length:], true
	default:
		return nil, nil, false
	}
}

// decodeSubFields attempts the optimistic sub-message parse of a Len
// field's raw bytes: it is treated as a sub-message only if the entire
// payload scans cleanly as a field sequence with no leftover bytes and no
// stray EGROUPs. On success it populates f.SubFields; on failure it
// leaves f.SubFields nil, meaning callers should treat f as an opaque
// string/bytes leaf.
func decodeSubFields(f *Field, packed bool) {
	if len(f.Value) == 0 {
		f.SubFields = []*Field{}
		return
	}
	fields, consumed := decodeFieldsStrict(f.Value, packed)
	if !consumed {
		return
	}
	f.SubFields = fields
}

// expandPackedSiblings is the one place the decoder looks sideways across
// siblings instead of purely top-down. It is never run during the initial
// decode: a caller addressing a Len field directly always gets the opaque
// bytes/sub-message view, and the default JSON rendering of a plain string
// or sub-message field is never disturbed by it. It runs from GetSubField,
// as a fallback after a requested repetition index has already come up
// short among the field's ordinary occurrences, and from AllSubFields,
// which expands every field number at once — either way mutating a slice of
// siblings that has already been observed, mirroring how a packed-scalar
// field only reveals its individual elements once something actually asks
// for one of them.
//
// For every not-yet-checked Len-typed field among siblings sharing
// fieldNumber whose bytes also scan cleanly as a packed run of
// varint/fixed32/fixed64 scalars, it splices synthetic scalar Fields
// (sharing the Len field's FieldNumber) into fields, right after the Len
// field itself. It reports whether it spliced anything in, so the caller
// knows whether retrying the index lookup is worthwhile.
func expandPackedSiblings(fields *[]*Field, fieldNumber uint32) bool {
	expanded := false
	for i := 0; i < len(*fields); i++ {
		f := (*fields)[i]
		if f.FieldNumber != fieldNumber || f.WireType != Len || f.packedChecked {
			continue
		}
		f.packedChecked = true

		elems := decodePackedVarint(f.Value)
		if elems == nil {
			elems = decodePackedFixed32(f.Value)
		}
		if elems == nil {
			elems = decodePackedFixed64(f.Value)
		}
		if elems == nil {
			continue
		}
		for _, e := range elems {
			e.FieldNumber = f.FieldNumber
			e.packedChecked = true
		}

		tail := append([]*Field{}, (*fields)[i+1:]...)
		*fields = append((*fields)[:i+1], elems...)
		*fields = append(*fields, tail...)
		i += len(elems)
		expanded = true
	}
	return expanded
}

func decodePackedVarint(buf []byte) []*Field {
	if len(buf) == 0 {
		return nil
	}
	var out []*Field
	rest := buf
	for len(rest) > 0 {
		_, tail, ok := ReadVarint(rest, maxVarint64Bytes)
		if !ok {
			return nil
		}
		out = append(out, &Field{WireType: Varint, Value: rest[:len(rest)-len(tail)]})
		rest = tail
	}
	return out
}

func decodePackedFixed32(buf []byte) []*Field {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return nil
	}
	var out []*Field
	for i := 0; i < len(buf); i += 4 {
		out = append(out, &Field{WireType: I32, Value: buf[i : i+4]})
	}
	return out
}

func decodePackedFixed64(buf []byte) []*Field {
	if len(buf) == 0 || len(buf)%8 != 0 {
		return nil
	}
	var out []*Field
	for i := 0; i < len(buf); i += 8 {
		out = append(out, &Field{WireType: I64, Value: buf[i : i+8]})
	}
	return out
}
