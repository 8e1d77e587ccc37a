package wire

// Field is one decoded tag-value pair in the schema-less field tree. Every
// Field belongs to a Buffer (the top-level Decode call) or to a parent
// Field's SubFields, never both.
//
// Value always holds the raw wire bytes that back this field: for Varint
// it is the bytes consumed by the varint itself, for I32/I64 the 4 or 8
// fixed bytes, and for Len the length-delimited payload (not including its
// own length prefix). SubFields is populated lazily, the first time a
// caller asks to descend into a Len-typed field and the optimistic
// sub-message parse succeeds.
type Field struct {
	FieldNumber uint32
	WireType    WireType
	Value       []byte

	Parent    *Field
	SubFields []*Field

	// packed is inherited from the Decode call that produced this field's
	// tree (see Decode's packed parameter) and controls whether
	// GetSubField is allowed to fall back to packed-repeated
	// reinterpretation when an ordinary repetition index comes up short.
	packed bool

	// subParsed records whether decodeSubFields has already been
	// attempted on this field, so a Len field that fails to parse as a
	// sub-message isn't retried on every descent.
	subParsed bool
	// packedChecked records whether this specific Len field has already
	// been tried (successfully or not) as a packed run of scalars, so a
	// GetSubField miss against its siblings doesn't re-attempt the parse
	// on every call.
	packedChecked bool
}

// childrenByTag groups f's SubFields by full tag (field number and wire
// type together), preserving the order in which each tag first appears.
// A field number that occurs at more than one wire type — a LEN wrapper
// alongside the VARINT/I32/I64 scalars expandPackedSiblings spliced next
// to it, for instance — lands in distinct groups, mirroring the
// original's subFieldMap keyed on the raw tag rather than the bare field
// number. It is the shared helper behind both GetSubField's repetition
// indexing and the JSON printer's grouping.
func childrenByTag(f *Field) (order []Tag, groups map[Tag][]*Field) {
	groups = make(map[Tag][]*Field)
	for _, child := range f.SubFields {
		tag := MakeTag(child.FieldNumber, child.WireType)
		if _, seen := groups[tag]; !seen {
			order = append(order, tag)
		}
		groups[tag] = append(groups[tag], child)
	}
	return order, groups
}

// FieldNumbers returns the distinct field numbers among f's direct
// children, in first-appearance order (collapsing a field number that
// appears at more than one wire type to its first occurrence),
// triggering f's lazy sub-message parse if it hasn't run yet.
func FieldNumbers(f *Field) []uint32 {
	if f == nil {
		return nil
	}
	ensureSubFields(f)
	order, _ := childrenByTag(f)

	var nums []uint32
	seen := make(map[uint32]bool)
	for _, tag := range order {
		num, _ := ParseTag(tag)
		if !seen[num] {
			seen[num] = true
			nums = append(nums, num)
		}
	}
	return nums
}

// AllSubFields returns every direct child of f, forcing both the lazy
// sub-message parse and — when f's tree was decoded with packed
// reinterpretation enabled — the packed-repeated expansion for every
// field number among them. Callers that want to see the whole child set
// at once (the JSON printer's recursive descent, foreach's row
// enumeration) use this instead of addressing children one repetition at
// a time through GetSubField.
func AllSubFields(f *Field) []*Field {
	if f == nil {
		return nil
	}
	ensureSubFields(f)
	if f.packed {
		for _, num := range FieldNumbers(f) {
			expandPackedSiblings(&f.SubFields, num)
		}
	}
	return f.SubFields
}

// GetSubField returns the repetition-th occurrence of fieldNumber at wire
// type wireType among f's direct children. repetition follows the path
// language's indexing: non-negative counts from the first occurrence,
// negative counts from the last (-1 is the last occurrence). It reports
// ok=false if no child matches both fieldNumber and wireType, or if
// repetition is out of range.
func GetSubField(f *Field, fieldNumber uint32, wireType WireType, repetition int) (*Field, bool) {
	if f == nil {
		return nil, false
	}
	ensureSubFields(f)

	if field, ok := lookupRepetition(f, fieldNumber, wireType, repetition); ok {
		return field, true
	}

	// No ordinary occurrence covers this index. Before giving up, and only
	// when this tree was decoded with packed reinterpretation enabled,
	// check whether any matching Len field's payload also scans as a
	// packed run of scalars; if so, its elements are spliced in right after
	// the Len field and become addressable in the group of their own wire
	// type, in sibling order.
	if !f.packed || !expandPackedSiblings(&f.SubFields, fieldNumber) {
		return nil, false
	}
	return lookupRepetition(f, fieldNumber, wireType, repetition)
}

// GetContainerSubField resolves the repetition-th occurrence of
// fieldNumber among f's direct children, trying wire type Len first and
// falling back to SGroup. It is the shared helper behind every path step
// except the last, which §4.5 restricts to descending through
// container-typed children only.
func GetContainerSubField(f *Field, fieldNumber uint32, repetition int) (*Field, bool) {
	if next, ok := GetSubField(f, fieldNumber, Len, repetition); ok {
		return next, true
	}
	return GetSubField(f, fieldNumber, SGroup, repetition)
}

func lookupRepetition(f *Field, fieldNumber uint32, wireType WireType, repetition int) (*Field, bool) {
	_, groups := childrenByTag(f)
	matches := groups[MakeTag(fieldNumber, wireType)]
	if len(matches) == 0 {
		return nil, false
	}

	idx := repetition
	if repetition < 0 {
		idx = len(matches) - 1 - (-repetition - 1)
	}
	if idx < 0 || idx >= len(matches) {
		return nil, false
	}
	return matches[idx], true
}

// ensureSubFields performs the lazy optimistic sub-message parse for f, if
// not already done, carrying f's packed setting down to its children so a
// later GetSubField descent into them can still fall back to packed
// reinterpretation. It is a no-op on anything but a Len field whose
// SubFields haven't been computed yet.
func ensureSubFields(f *Field) {
	if f.WireType != Len || f.subParsed {
		return
	}
	f.subParsed = true
	decodeSubFields(f, f.packed)
}
