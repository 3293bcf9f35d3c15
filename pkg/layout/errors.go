package layout

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSchemaNotFound is returned when no schema has the requested id.
var ErrSchemaNotFound = errors.New("layout: schema not found")

// CompilationError reports a schema that cannot be compiled into a layout.
type CompilationError struct {
	msg string
}

func (e *CompilationError) Error() string {
	return e.msg
}

func compileErrorf(format string, args ...any) error {
	return errors.WithStack(&CompilationError{msg: fmt.Sprintf(format, args...)})
}

// IsCompilationError reports whether err is, or wraps, a CompilationError.
func IsCompilationError(err error) bool {
	var ce *CompilationError
	return errors.As(err, &ce)
}
