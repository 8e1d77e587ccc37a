package wire

import "testing"

func TestSetConfigAndGetConfig(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)

	SetConfig(Config{DecodeCacheWindowBytes: 10, CallCacheSize: 5, PackedByDefault: true})
	got := GetConfig()
	if got.DecodeCacheWindowBytes != 10 || got.CallCacheSize != 5 || !got.PackedByDefault {
		t.Fatalf("GetConfig() = %+v", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	orig := GetConfig()
	defer SetConfig(orig)

	got := GetConfig()
	if got.DecodeCacheWindowBytes != 4096 {
		t.Fatalf("DecodeCacheWindowBytes = %d, want 4096", got.DecodeCacheWindowBytes)
	}
	if got.CallCacheSize != 256 {
		t.Fatalf("CallCacheSize = %d, want 256", got.CallCacheSize)
	}
}
