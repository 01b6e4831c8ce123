package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// InputNotFoundError indicates the input file could not be opened or read.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input %s not readable: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// MissingFieldError indicates one or more required columns are absent from the input.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("missing required columns: %s", strings.Join(fields, ", "))
}

// MalformedTimestampError indicates a time column held a non-numeric value.
type MalformedTimestampError struct {
	Column string
	Value  string
	Row    int
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("row %d: column %s: malformed timestamp %q", e.Row, e.Column, e.Value)
}

// DegenerateTimeRangeError indicates the observed time span is zero or negative,
// which would make every rate computation divide by zero. An empty dataset
// surfaces as this error too (its span is zero).
type DegenerateTimeRangeError struct {
	SpanSeconds float64
}

func (e *DegenerateTimeRangeError) Error() string {
	return fmt.Sprintf("total time period is zero or negative (%.2fs); check start_time and end_time values", e.SpanSeconds)
}
