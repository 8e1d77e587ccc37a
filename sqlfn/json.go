package sqlfn

import "github.com/andreasbell/sqlite-protobuf/wire"

const (
	modeTypedKeys = 1 << 0
	modePacked    = 1 << 1
)

// ToJSON renders blob's decoded field tree as JSON text. mode is an
// optional bitmask (0 if omitted): bit 0 selects typed keys
// ("<field>_<wiretype>" instead of bare field numbers), bit 1 selects
// eager packed-repeated reinterpretation before rendering. This mirrors
// protobuf_to_json's argc-1/argc-2 signature and mode-bit semantics from
// the original C++ extension.
func ToJSON(blob []byte, mode int64) string {
	if mode&modePacked != 0 {
		// forceDescend mutates the tree it walks (that's how the lazy
		// packed reinterpretation gets triggered everywhere at once), so
		// it must never run against the shared cache's tree: a later,
		// non-packed query against the same blob would see the splices
		// left behind by this one. Decode a throwaway copy with packed
		// reinterpretation enabled instead.
		root := wire.Decode(blob, true)
		forceDescend(root)
		return wire.ToJSON(root, mode&modeTypedKeys != 0)
	}
	root := wire.DecodeCached(blob)
	return wire.ToJSON(root, mode&modeTypedKeys != 0)
}

// forceDescend walks every child in the tree so the packed
// reinterpretation that normally happens lazily (on first GetSubField
// descent) has already run everywhere before ToJSON renders, matching
// the original's eager `packed=true` decode path for to_json.
func forceDescend(f *wire.Field) {
	for _, child := range wire.AllSubFields(f) {
		forceDescend(child)
	}
}
