package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

const (
	ErrCodeOK = 0

	// checksum err
	ErrChecksumMismatch    = 1101
	ErrChecksumMissingFile = 1102
	ErrChecksumBadLine     = 1103
	ErrChecksumNoneFound   = 1104

	// file err
	ErrFileOpen     = 1201
	ErrFileRead     = 1202
	ErrFileTooLarge = 1203
	ErrFileWrite    = 1204

	// Invalid Parameter
	ErrInvalidParameter = 1501
	ErrInvalidAlgorithm = 1502
	ErrInvalidConfig    = 1503
	ErrInvalidDigest    = 1504

	// other err
	ErrUnknown    = 1701
	ErrWorkerPool = 1702
)

var codeNames = map[int]string{
	ErrCodeOK:              "ok",
	ErrChecksumMismatch:    "checksum mismatch",
	ErrChecksumMissingFile: "listed file missing",
	ErrChecksumBadLine:     "malformed checksum line",
	ErrChecksumNoneFound:   "no properly formatted checksum lines found",
	ErrFileOpen:            "cannot open file",
	ErrFileRead:            "cannot read file",
	ErrFileTooLarge:        "file too large",
	ErrFileWrite:           "cannot write file",
	ErrInvalidParameter:    "invalid parameter",
	ErrInvalidAlgorithm:    "invalid algorithm",
	ErrInvalidConfig:       "invalid config",
	ErrInvalidDigest:       "invalid digest",
	ErrUnknown:             "unknown error",
	ErrWorkerPool:          "worker pool failure",
}

// CodeName returns a short description of code.
func CodeName(code int) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("code %d", code)
}

// Error attaches one of the codes above to a cause.
type Error struct {
	Code  int
	cause error
}

// New returns an Error with a fresh message.
func New(code int, msg string) error {
	return &Error{Code: code, cause: pkgerrors.New(msg)}
}

// Errorf is New with formatting.
func Errorf(code int, format string, args ...interface{}) error {
	return &Error{Code: code, cause: pkgerrors.Errorf(format, args...)}
}

// Wrap annotates err with msg and code. Wrap returns nil if err is nil.
func Wrap(code int, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, cause: pkgerrors.Wrap(err, msg)}
}

// Wrapf is Wrap with formatting.
func Wrapf(code int, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, cause: pkgerrors.Wrapf(err, format, args...)}
}

// WithCode attaches code to err without changing its message. WithCode
// returns nil if err is nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, cause: pkgerrors.WithStack(err)}
}

func (e *Error) Error() string {
	return e.cause.Error()
}

// Cause lets pkg/errors.Cause reach the original error.
func (e *Error) Cause() error {
	return pkgerrors.Cause(e.cause)
}

// Code returns the code of the outermost Error in err's chain,
// ErrCodeOK for nil and ErrUnknown for uncoded errors.
func Code(err error) int {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		c, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		next := c.Cause()
		if next == err {
			break
		}
		err = next
	}
	if err == nil {
		return ErrCodeOK
	}
	return ErrUnknown
}

// ExitCode maps err to a process exit status: 0 success, 1 verification
// failure, 2 anything else.
func ExitCode(err error) int {
	switch Code(err) {
	case ErrCodeOK:
		return 0
	case ErrChecksumMismatch, ErrChecksumMissingFile:
		return 1
	default:
		return 2
	}
}
