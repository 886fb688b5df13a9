package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnNotFound is wrapped by ParseError when a required column is absent.
var ErrColumnNotFound = errors.New("column not found")

// ParseError reports an input value that could not be parsed. It aborts the run.
// Row is the zero-based index of the data row, or -1 when the whole column is missing.
type ParseError struct {
	Err    error
	Column string
	Value  string
	Row    int
}

func (e *ParseError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("row %d: cannot parse %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError reports a configuration value outside its domain. It is raised before a run starts.
type ConfigError struct {
	Value  any
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// MissingFieldError reports a metric or chart omitted because its input fields are absent.
// It never aborts a run.
type MissingFieldError struct {
	Metric string
	Fields []Field
}

func (e MissingFieldError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Column()
	}
	return fmt.Sprintf("%s omitted: missing %s", e.Metric, strings.Join(names, ", "))
}
