package wire

import "testing"

func TestParsePathBasic(t *testing.T) {
	steps, err := ParsePath("$.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 || steps[0].FieldNumber != 1 || steps[0].Index != 0 {
		t.Fatalf("steps = %+v", steps)
	}
}

func TestParsePathNested(t *testing.T) {
	steps, err := ParsePath("$.1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("steps = %+v, want 2", steps)
	}
	if steps[0].FieldNumber != 1 || steps[1].FieldNumber != 2 {
		t.Fatalf("steps = %+v", steps)
	}
}

func TestParsePathWithIndex(t *testing.T) {
	steps, err := ParsePath("$.1[63]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 || steps[0].Index != 63 {
		t.Fatalf("steps = %+v", steps)
	}
}

func TestParsePathWithNegativeIndex(t *testing.T) {
	steps, err := ParsePath("$.1[-1]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps[0].Index != -1 {
		t.Fatalf("index = %d, want -1", steps[0].Index)
	}
}

func TestParsePathRoot(t *testing.T) {
	steps, err := ParsePath("$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 0 {
		t.Fatalf("steps = %+v, want empty", steps)
	}
}

func TestParsePathSyntaxErrors(t *testing.T) {
	bad := []string{"", "1.2", "$1", "$.", "$.1[", "$.1[abc]", "$.a"}
	for _, p := range bad {
		if _, err := ParsePath(p); err == nil {
			t.Errorf("ParsePath(%q) expected an error", p)
		}
	}
}

func TestEvaluateNestedMessage(t *testing.T) {
	root := Decode([]byte{0x0a, 0x02, 0x08, 0x2a}, false)
	steps, err := ParsePath("$.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := Evaluate(root, steps, Int32)
	if !ok || v.(int32) != 42 {
		t.Fatalf("value = %v, %v, want 42, true", v, ok)
	}
}

func TestEvaluateMissingPathReturnsAbsent(t *testing.T) {
	root := Decode([]byte{0x08, 0x2a}, false)
	steps, _ := ParsePath("$.99")
	if _, ok := Evaluate(root, steps, Int32); ok {
		t.Fatalf("expected missing field to be absent")
	}
}

func TestParsePathCachedMatchesParsePath(t *testing.T) {
	ResetCallCache()
	want, wantErr := ParsePath("$.1.2[-1]")
	got, gotErr := ParsePathCached("$.1.2[-1]")
	if (wantErr == nil) != (gotErr == nil) {
		t.Fatalf("error mismatch: %v vs %v", wantErr, gotErr)
	}
	if len(got) != len(want) {
		t.Fatalf("steps mismatch: %+v vs %+v", got, want)
	}
	// second call should hit the cache and return the same steps
	got2, _ := ParsePathCached("$.1.2[-1]")
	if len(got2) != len(want) {
		t.Fatalf("cached steps mismatch: %+v vs %+v", got2, want)
	}
}
