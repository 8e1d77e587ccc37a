package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// PathStep names one descent through the field tree: field number
// FieldNumber, repetition Index (0 for the first occurrence unless an
// explicit "[k]" overrides it).
type PathStep struct {
	FieldNumber uint32
	Index       int
}

// ParsePath parses a path string of the form "$.<n>[.<n>|.<n>[k]]*" into
// its steps. The leading "$" is mandatory; a bare "$" parses to zero
// steps (the whole message). Every step after it is "." followed by a
// decimal field number, optionally followed by a bracketed signed
// repetition index ("[2]", "[-1]"). A step with no bracket implies index
// 0 (the first occurrence).
//
// Errors are reported as *FieldError wrapping ErrPathSyntax, annotated
// with the prefix of the path already consumed when parsing failed.
func ParsePath(path string) ([]PathStep, error) {
	if !strings.HasPrefix(path, "$") {
		return nil, &FieldError{Err: fmt.Errorf("%w: path must start with \"$\"", ErrPathSyntax)}
	}
	rest := path[1:]
	if rest == "" {
		return nil, nil
	}

	var steps []PathStep
	consumed := "$"
	for len(rest) > 0 {
		if rest[0] != '.' {
			return nil, wrapWithStep(&FieldError{Err: fmt.Errorf("%w: expected \".\" at %q", ErrPathSyntax, rest)}, consumed)
		}
		rest = rest[1:]

		numEnd := 0
		for numEnd < len(rest) && rest[numEnd] >= '0' && rest[numEnd] <= '9' {
			numEnd++
		}
		if numEnd == 0 {
			return nil, wrapWithStep(&FieldError{Err: fmt.Errorf("%w: expected field number at %q", ErrPathSyntax, rest)}, consumed)
		}
		fieldNumber, err := strconv.ParseUint(rest[:numEnd], 10, 32)
		if err != nil {
			return nil, wrapWithStep(&FieldError{Err: fmt.Errorf("%w: field number %q out of range", ErrPathSyntax, rest[:numEnd])}, consumed)
		}
		rest = rest[numEnd:]
		step := PathStep{FieldNumber: uint32(fieldNumber), Index: 0}
		consumed += "." + strconv.FormatUint(fieldNumber, 10)

		if len(rest) > 0 && rest[0] == '[' {
			closeIdx := strings.IndexByte(rest, ']')
			if closeIdx < 0 {
				return nil, wrapWithStep(&FieldError{Err: fmt.Errorf("%w: unterminated \"[\"", ErrPathSyntax)}, consumed)
			}
			idxStr := rest[1:closeIdx]
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, wrapWithStep(&FieldError{Err: fmt.Errorf("%w: bad repetition index %q", ErrPathSyntax, idxStr)}, consumed)
			}
			step.Index = idx
			consumed += rest[:closeIdx+1]
			rest = rest[closeIdx+1:]
		}

		steps = append(steps, step)
	}

	return steps, nil
}

// Evaluate walks root (as produced by Decode) along steps, then converts
// the resolved Field's bytes to lt. Every step but the last descends
// through a container: it resolves against wire type Len, falling back
// to SGroup. The last step instead tries each wire type lastStepWireTypes
// reports for lt, in order, since that is the one step a requested
// LogicalType actually constrains. It reports ok=false if any step fails
// to resolve, or if the final field's wire type can't carry lt.
//
// An empty steps slice with lt==Buffer degenerates to "the whole decoded
// message as bytes", matching path "$" against the original buffer.
func Evaluate(root *Field, steps []PathStep, lt LogicalType) (value interface{}, ok bool) {
	f := root
	for i, step := range steps {
		var next *Field
		var stepOK bool
		if i == len(steps)-1 {
			next, stepOK = resolveLastStep(f, step, lt)
		} else {
			next, stepOK = GetContainerSubField(f, step.FieldNumber, step.Index)
		}
		if !stepOK {
			return nil, false
		}
		f = next
	}
	return AsLogicalType(f, lt)
}

// resolveLastStep tries every wire type lastStepWireTypes allows for lt,
// in order, against step's field number and repetition index.
func resolveLastStep(f *Field, step PathStep, lt LogicalType) (*Field, bool) {
	for _, wt := range lastStepWireTypes(lt) {
		if next, ok := GetSubField(f, step.FieldNumber, wt, step.Index); ok {
			return next, true
		}
	}
	return nil, false
}
