package threatmodel

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a document failed to load
type ErrorKind string

const (
	KindFileNotFound        ErrorKind = "file_not_found"
	KindMalformedDocument   ErrorKind = "malformed_document"
	KindMissingField        ErrorKind = "missing_field"
	KindTypeMismatch        ErrorKind = "type_mismatch"
	KindUnresolvedReference ErrorKind = "unresolved_reference"
)

// LoadError reports a single failure while loading an architecture or
// threat intelligence document. Kind is stable and safe to branch on;
// Detail carries the human-readable specifics.
type LoadError struct {
	Kind    ErrorKind
	Path    string
	Section string
	Detail  string
	Err     error
}

func (e *LoadError) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg = e.Detail
	}
	if e.Section != "" {
		msg = fmt.Sprintf("%s: %s", e.Section, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a LoadError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Kind == kind
	}
	return false
}
