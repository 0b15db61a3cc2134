package yaerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

// Package yaerrors provides the typed error surface of GoYaRSA. Every
// failure a package returns carries a Code from the taxonomy below, a cause,
// and a traceback that grows one frame per Wrap call, so the caller (usually
// the interactive menu) can both branch on the failure kind and print where
// it came from.
// The custom error type implements the standard error interface and provides
// additional methods for error handling and tracing.
type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log yalogger.Logger) Error
	Code() int
	Error() string
	Unwrap() error
	UnwrapLastError() string
}

// Failure taxonomy. Codes are stable and branch-safe: callers compare with
// Code() rather than string-matching tracebacks.
const (
	// CodeInternal covers failures that are not the caller's fault
	// (exhausted randomness source, storage breakage).
	CodeInternal = iota + 1

	// CodeInvalidInput marks parameters rejected up front: bit lengths too
	// small, non-positive values, blocks at or above the modulus.
	CodeInvalidInput

	// CodeKeyGeneration marks a failed key derivation attempt: no co-prime
	// public exponent within the search bound, or the p = q retry budget
	// ran out. The caller may retry with fresh randomness.
	CodeKeyGeneration

	// CodeDecoding marks decrypted bytes that do not frame or decode as
	// valid text. It almost always means the ciphertext was produced under
	// a different key pair.
	CodeDecoding
)

const (
	codeSeparate  = " | "
	errorSeparate = " -> "
)

// Minimal error implementation for Error interface.
type yaError struct {
	code      int
	cause     error
	traceback string
}

// FromError builds an Error from an existing error with a taxonomy code and a
// context message. It wraps the original error and returns a new Error
// instance.
func FromError(code int, cause error, wrap string) Error {
	return &yaError{
		code:      code,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog builds an Error from an existing error with a taxonomy
// code and a context message, and logs the message using the provided logger.
func FromErrorWithLog(code int, cause error, wrap string, log yalogger.Logger) Error {
	msg := fmt.Sprintf("%s: %v", wrap, cause)
	log.Error(msg)

	return &yaError{
		code:      code,
		cause:     cause,
		traceback: msg,
	}
}

// FromString builds an Error from a plain message with a taxonomy code.
func FromString(code int, msg string) Error {
	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog builds an Error from a plain message with a taxonomy
// code, and logs the message using the provided logger.
func FromStringWithLog(code int, msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// Error returns the code and traceback message as a string.
func (e *yaError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%d%s%s", e.code, codeSeparate, e.traceback)
}

// Unwrap returns the original error that caused this error.
func (e *yaError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns the outermost traceback frame.
func (e *yaError) UnwrapLastError() string {
	safetyCheck(&e)

	traceback := []byte(e.traceback)

	end := strings.Index(e.traceback, errorSeparate)
	if end == -1 {
		return e.traceback
	}

	return string(traceback[:end])
}

// Wrap adds a message to the error traceback, providing additional context.
// It is highly recommended to use this method each time you return the error
// to a higher level in the call stack.
func (e *yaError) Wrap(msg string) Error {
	safetyCheck(&e)
	e.traceback = fmt.Sprintf("%s%s%s", msg, errorSeparate, e.traceback)

	return e
}

// WrapWithLog adds a message to the error traceback, providing additional
// context, and logs the message using the provided logger.
func (e *yaError) WrapWithLog(msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return e.Wrap(msg)
}

// Code returns the taxonomy code associated with this error.
func (e *yaError) Code() int {
	safetyCheck(&e)

	return e.code
}

// HasCode reports whether err is a yaerrors.Error carrying the given code.
// Plain errors and nil report false for every code.
func HasCode(err error, code int) bool {
	var yaErr Error
	if errors.As(err, &yaErr) {
		return yaErr.Code() == code
	}

	return false
}

// safetyCheck is a helper function to ensure memory safety.
// It checks if the error is nil and sets a default error if it is.
// This is a safety measure to prevent nil pointer dereference.
// It sets a default "developer is a teapot" error if the error is nil.
func safetyCheck(err **yaError) {
	if *err == nil {
		*err = &yaError{
			code:      CodeInternal,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
