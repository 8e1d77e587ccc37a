package wire

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError reports a path-syntax error, annotated with the path steps
// already parsed successfully before the failure. It is the only error
// type this package returns; every other operation signals failure with
// a plain boolean, since "field absent" or "wrong wire type" are routine
// outcomes of schema-less decoding rather than exceptional conditions.
type FieldError struct {
	FieldPath []string
	Err       error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("error at path %s: %v", strings.Join(e.FieldPath, ""), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

var (
	// ErrPathSyntax is the sentinel wrapped by every FieldError ParsePath
	// returns; callers that only care "was this a syntax error" can test
	// with errors.Is(err, wire.ErrPathSyntax).
	ErrPathSyntax = errors.New("malformed protobuf path")
)

// wrapWithStep prepends step to an error's recorded path. ParsePath passes
// the literal text of the path it has consumed before the failure (e.g.
// "$.1" or "$.1[2].3").
func wrapWithStep(err error, step string) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FieldError); ok {
		return &FieldError{
			FieldPath: append([]string{step}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}
	return &FieldError{
		FieldPath: []string{step},
		Err:       err,
	}
}
