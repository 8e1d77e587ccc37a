package wire

import (
	"errors"
	"strings"
	"testing"
)

func TestFieldErrorUnwrapAndIs(t *testing.T) {
	_, err := ParsePath("$.a")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if !errors.Is(err, ErrPathSyntax) {
		t.Fatalf("expected errors.Is(err, ErrPathSyntax) to hold")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected err to be a *FieldError")
	}
	if len(fe.FieldPath) == 0 {
		t.Fatalf("expected a non-empty field path trail")
	}
}

func TestFieldErrorMessageIncludesPath(t *testing.T) {
	_, err := ParsePath("$.1[abc]")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "$.1") {
		t.Fatalf("error message %q does not include the parsed path prefix", err.Error())
	}
}
