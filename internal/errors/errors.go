package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Code extracts the error code from err, walking the wrap chain.
// Foreign errors report CodeInternal.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// Error code constants
const (
	CodeInternal            = "INTERNAL_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidArg          = "INVALID_ARGUMENT"
	CodeInvalidReference    = "INVALID_REFERENCE"    // Input is neither a video nor a playlist reference (batch-fatal)
	CodeCaptionsUnavailable = "CAPTIONS_UNAVAILABLE" // No caption track exists or captions are disabled by the uploader
	CodeExternal            = "EXTERNAL_ERROR"
	CodeTranscription       = "TRANSCRIPTION_ERROR" // Audio download or whisper model failure
	CodeWrite               = "WRITE_ERROR"         // Per-video output write failure
)
