package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataLoad marks content that failed to load or validate. Content errors
// are fatal at startup.
var ErrDataLoad = errors.New("content: invalid data")

// DataLoadError reports every problem found in one content document.
type DataLoadError struct {
	Document string
	Problems []string
	Err      error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "content: %s", e.Document)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Problems) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Problems, "; "))
	}
	return b.String()
}

// Unwrap exposes both ErrDataLoad and the underlying cause.
func (e *DataLoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataLoad}
	}
	return []error{ErrDataLoad, e.Err}
}
