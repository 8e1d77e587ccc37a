package wire

import "testing"

func TestReadVarint(t *testing.T) {
	tests := []struct {
		name  string
		buf   []byte
		want  uint64
		rest  int
		ok    bool
	}{
		{"zero", []byte{0x00}, 0, 0, true},
		{"one byte", []byte{0x01}, 1, 0, true},
		{"five bytes", []byte{0xd6, 0xff, 0xff, 0xff, 0x0f}, 0xffffffd6, 0, true},
		{"trailing data kept", []byte{0x01, 0x02, 0x03}, 1, 2, true},
		{"unterminated", []byte{0x80, 0x80, 0x80}, 0, 0, false},
		{"empty", []byte{}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, ok := ReadVarint(tt.buf, maxVarint64Bytes)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("value = %d, want %d", got, tt.want)
			}
			if len(rest) != tt.rest {
				t.Errorf("len(rest) = %d, want %d", len(rest), tt.rest)
			}
		})
	}
}

func TestReadVarintMaxBytes(t *testing.T) {
	// A 5-byte-max varint must reject a value that needs a 6th byte.
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	if _, _, ok := ReadVarint(buf, maxVarint32Bytes); ok {
		t.Fatalf("expected overlong varint to be rejected at maxBytes=5")
	}
}

func TestZigZag32RoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 2, -2, 2147483647, -2147483648}
	for _, v := range cases {
		got := DecodeZigZag32(EncodeZigZag32(v))
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}

func TestZigZag64RoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 2, -2, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		got := DecodeZigZag64(EncodeZigZag64(v))
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}

func TestAppendVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 35, ^uint64(0)}
	for _, v := range values {
		buf := AppendVarint(nil, v)
		if len(buf) != VarintSize(v) {
			t.Errorf("VarintSize(%d) = %d, encoded length = %d", v, VarintSize(v), len(buf))
		}
		got, rest, ok := ReadVarint(buf, maxVarint64Bytes)
		if !ok || len(rest) != 0 {
			t.Fatalf("ReadVarint(%v) = %d, %v, %v", buf, got, rest, ok)
		}
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}
