package sqlfn

import "github.com/andreasbell/sqlite-protobuf/wire"

// ForeachRow is one row produced by walking a resolved root field's
// direct children, matching the `foreach`/`each` virtual table's column
// layout from the original extension: tag, field, wiretype, value,
// parent, buffer, root.
type ForeachRow struct {
	Tag      uint32 // rowid: ordinal position among the enumerated children
	Field    uint32 // field number
	WireType wire.WireType
	Value    []byte
}

// ForeachRows enumerates buffer's decoded tree starting at rootPath
// (default "$", the whole message) and returns one row per direct child
// of the resolved field, in wire order. It returns nil (zero rows, no
// error) when rootPath doesn't resolve to anything — the original
// extension's "silent on null root" behavior — and an error only when
// rootPath itself fails to parse.
func ForeachRows(buffer []byte, rootPath string) ([]ForeachRow, error) {
	steps, err := wire.ParsePathCached(rootPath)
	if err != nil {
		return nil, err
	}

	root := wire.DecodeCachedPacked(buffer)
	f := root
	for _, step := range steps {
		next, ok := wire.GetContainerSubField(f, step.FieldNumber, step.Index)
		if !ok {
			return nil, nil
		}
		f = next
	}

	var rows []ForeachRow
	for i, child := range wire.AllSubFields(f) {
		rows = append(rows, ForeachRow{
			Tag:      uint32(i),
			Field:    child.FieldNumber,
			WireType: child.WireType,
			Value:    child.Value,
		})
	}
	return rows, nil
}
