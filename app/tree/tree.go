package tree

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// PathError reports a failed lookup, carrying the attempted path.
// A value that is present but empty (e.g. "") is not an error.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Reason)
}

// Parse decodes raw JSON into a generic tree of map[string]any,
// []any and scalars.
func Parse(data []byte) (any, error) {
	value, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return value, nil
}

func lookup(root any, path string) (any, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, &PathError{Path: path, Reason: "invalid path expression"}
	}
	if !expr.Has(root) {
		return nil, &PathError{Path: path, Reason: "not found"}
	}
	return expr.First(root), nil
}

// String resolves path to a string value.
func String(root any, path string) (string, error) {
	value, err := lookup(root, path)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &PathError{Path: path, Reason: fmt.Sprintf("expected string, got %T", value)}
	}
	return s, nil
}

// Bool resolves path to a boolean value.
func Bool(root any, path string) (bool, error) {
	value, err := lookup(root, path)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, &PathError{Path: path, Reason: fmt.Sprintf("expected bool, got %T", value)}
	}
	return b, nil
}

// List resolves path to a list value.
func List(root any, path string) ([]any, error) {
	value, err := lookup(root, path)
	if err != nil {
		return nil, err
	}
	l, ok := value.([]any)
	if !ok {
		return nil, &PathError{Path: path, Reason: fmt.Sprintf("expected list, got %T", value)}
	}
	return l, nil
}

// Map resolves path to an object value.
func Map(root any, path string) (map[string]any, error) {
	value, err := lookup(root, path)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &PathError{Path: path, Reason: fmt.Sprintf("expected object, got %T", value)}
	}
	return m, nil
}
