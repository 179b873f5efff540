package errors

import (
	"fmt"
	"strings"
)

// Append combines given errors into a single error instance. Nil errors are
// ignored. Appending errors that are collections themselves flattens them.
// If no error is left, nil is returned. A single error is returned as it is.
//
// Use this function when validating a model, so that all problems are
// reported at once.
func Append(errs ...error) error {
	var collected []error
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			collected = append(collected, m.errs...)
			continue
		}
		collected = append(collected, e)
	}

	switch len(collected) {
	case 0:
		return nil
	case 1:
		return collected[0]
	default:
		return &multiErr{errs: collected}
	}
}

// multiErr is a collection of errors. It reports the code of the first error
// it contains, consistent with a fail-fast approach.
type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m.errs), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first collected error.
func (m *multiErr) ABCICode() uint32 {
	return abciCode(m.errs[0])
}
