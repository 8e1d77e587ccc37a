package wire

import "testing"

func TestDecodeCachedHitOnSameBytes(t *testing.T) {
	ResetCache()
	buf := []byte{0x08, 0x2a}

	r1 := DecodeCached(buf)
	statsAfterFirst := Stats()
	if statsAfterFirst.Misses != 1 || statsAfterFirst.Hits != 0 {
		t.Fatalf("stats after first call = %+v, want 1 miss, 0 hits", statsAfterFirst)
	}

	r2 := DecodeCached(buf)
	statsAfterSecond := Stats()
	if statsAfterSecond.Hits != 1 {
		t.Fatalf("stats after second call = %+v, want 1 hit", statsAfterSecond)
	}
	if r1 != r2 {
		t.Fatalf("expected the same cached tree to be returned")
	}
}

func TestDecodeCachedMissOnDifferentContent(t *testing.T) {
	ResetCache()
	DecodeCached([]byte{0x08, 0x2a})
	DecodeCached([]byte{0x08, 0x2b})
	stats := Stats()
	if stats.Misses != 2 {
		t.Fatalf("stats = %+v, want 2 misses", stats)
	}
}

func TestDecodeCachedPackedMissesAgainstPlainCache(t *testing.T) {
	ResetCache()
	buf := []byte{0x0a, 0x03, 0x01, 0x02, 0x03}

	plain := DecodeCached(buf)
	packed := DecodeCachedPacked(buf)
	if Stats().Misses != 2 {
		t.Fatalf("stats = %+v, want 2 misses (plain and packed share no slot)", Stats())
	}
	if plain == packed {
		t.Fatalf("expected distinct trees for differing packed settings")
	}

	if _, ok := GetSubField(plain, 1, Varint, 0); ok {
		t.Fatalf("expected the plain-decoded tree to not expand packed siblings")
	}
	if _, ok := GetSubField(packed, 1, Varint, 0); !ok {
		t.Fatalf("expected the packed-decoded tree to expand packed siblings")
	}
}

func TestDecodeCachedEqualContentDifferentBackingArray(t *testing.T) {
	ResetCache()
	a := []byte{0x08, 0x2a}
	b := make([]byte, len(a))
	copy(b, a)

	r1 := DecodeCached(a)
	r2 := DecodeCached(b)
	if r1 != r2 {
		t.Fatalf("expected byte-identical content at a different address to still hit the cache")
	}
	if Stats().Hits != 1 {
		t.Fatalf("stats = %+v, want 1 hit", Stats())
	}
}
