package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so the transport layer can map them
// to status codes without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindStorage
	KindGeneration
	KindCancelled
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation marks malformed caller input (empty required field).
func Validation(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

// Storage marks a durable store that is unreachable or failed a write.
func Storage(message string, err error) error {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

// Generation marks the case where both the primary and the fallback
// backend failed. With an offline fallback this should never happen.
func Generation(message string, err error) error {
	return &AppError{Kind: KindGeneration, Message: message, Err: err}
}

// Cancelled marks a streaming consumer that disconnected mid-response.
func Cancelled(message string) error {
	return &AppError{Kind: KindCancelled, Message: message}
}

func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsStorage(err error) bool    { return KindOf(err) == KindStorage }
func IsGeneration(err error) bool { return KindOf(err) == KindGeneration }
func IsCancelled(err error) bool  { return KindOf(err) == KindCancelled }
