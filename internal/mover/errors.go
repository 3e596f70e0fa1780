package mover

import (
	"errors"
	"fmt"
	"syscall"
)

// Error kinds. Every *MoveError unwraps to exactly one of them.
var (
	ErrConfiguration         = errors.New("invalid configuration")
	ErrOpen                  = errors.New("cannot open file")
	ErrUnsupportedFilesystem = errors.New("filesystem does not support hole punching")
	ErrIO                    = errors.New("i/o failure")
)

// Steps of a move, used as MoveError.Op
const (
	OpOpenInput       = "open input"
	OpOpenOutput      = "open output"
	OpStatInput       = "fstat input"
	OpReserveOutput   = "fallocate output"
	OpSeekInput       = "seek input"
	OpReadInput       = "read input"
	OpSeekOutput      = "seek output"
	OpWriteOutput     = "write output"
	OpPunchInput      = "fallocate input"
	OpValidateRequest = "validate request"
)

// MoveError records the step and file that failed along with the cause.
type MoveError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *MoveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MoveError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, path string, err error) *MoveError {
	return &MoveError{Op: op, Path: path, Kind: kind, Err: err}
}

// ConfigError builds a configuration error that is not tied to a file.
func ConfigError(op string, err error) error {
	return newError(ErrConfiguration, op, "", err)
}

// OpenError builds an error for a file that could not be opened.
func OpenError(op, path string, err error) error {
	return newError(ErrOpen, op, path, err)
}

// ExitCode maps an error to a process exit status. Configuration errors
// exit with EINVAL; other failures exit with the errno of the failing
// syscall when there is one.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrConfiguration) {
		return int(syscall.EINVAL)
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno > 0 && errno < 256 {
		return int(errno)
	}
	return 1
}

// IOError builds an error for a failed filesystem operation on path.
func IOError(op, path string, err error) error {
	return newError(ErrIO, op, path, err)
}
