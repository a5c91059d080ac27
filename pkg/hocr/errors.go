package hocr

import (
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by MalformedInputError when a required field is absent
var ErrMissingField = errors.New("missing field")

// MalformedInputError reports a title field that could not be turned into
// the value layout analysis needs. Page and Line are -1 when unknown.
type MalformedInputError struct {
	Page  int
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedInputError) Error() string {
	location := ""
	switch {
	case e.Page >= 0 && e.Line >= 0:
		location = fmt.Sprintf("page %d, line %d: ", e.Page, e.Line)
	case e.Page >= 0:
		location = fmt.Sprintf("page %d: ", e.Page)
	}

	if e.Value == "" {
		return fmt.Sprintf("malformed input: %sfield %s: %v", location, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed input: %sfield %s %q: %v", location, e.Field, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// locate fills in the page and line of a MalformedInputError found in err
func locate(err error, page, line int) error {
	var malformed *MalformedInputError
	if errors.As(err, &malformed) {
		malformed.Page = page
		malformed.Line = line
	}
	return err
}
