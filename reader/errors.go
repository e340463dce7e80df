package reader

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable matches every failure to open or read a source file
var ErrSourceUnavailable = errors.New("source unavailable")

// SourceError reports a missing or unreadable source.
//
// The underlying error is kept, so errors.Is(err, os.ErrNotExist) and
// errors.Is(err, os.ErrPermission) still work.
type SourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes every SourceError match ErrSourceUnavailable
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
