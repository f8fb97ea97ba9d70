// Package transform converts raw LLM output (JSON or XML) into validated
// DIWOO metadata records. The two wire formats have independent entry
// points that converge on diwoo.Metadata.
//
// The error policy is deliberately asymmetric: structural problems (broken
// JSON, malformed XML, schema violations) are fatal and typed, while
// field-level problems (unknown codes, unparseable dates) are repaired
// with deterministic fallbacks and reported as warnings.
package transform

import (
	"errors"
	"fmt"
	"strings"
)

// Structural parse failures. Both are fatal to the request.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrInvalidXML  = errors.New("invalid XML")
)

// ValidationError reports a schema validation failure on an otherwise
// well-formed XML document. Distinct from a syntax error.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Problems, "; "))
}

// Warning records a field-level problem that was repaired with a fallback.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}
