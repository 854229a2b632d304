// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotDecodable indicates the QR service could not read a code from the
	// image, including the explicit empty/"NULL" payload case.
	ErrNotDecodable = errors.New("qr code not decodable")

	// ErrMissingChatID indicates an inbound update without a chat identifier.
	ErrMissingChatID = errors.New("chat id not found in update")

	// ErrMalformedUpdate indicates an inbound body that could not be parsed.
	ErrMalformedUpdate = errors.New("malformed update body")

	// ErrTextTooLong indicates text exceeding the QR payload limit.
	ErrTextTooLong = errors.New("text too long for qr code")
)

// SendError represents a failed Telegram send call with context.
type SendError struct {
	Kind   string // "text" or "photo"
	ChatID int64
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s to chat %d: %v", e.Kind, e.ChatID, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// NewSendError creates a new send error.
func NewSendError(kind string, chatID int64, err error) *SendError {
	return &SendError{Kind: kind, ChatID: chatID, Err: err}
}

// ServiceError represents a QR service call failure with context.
type ServiceError struct {
	Operation  string // "decode" or "generate"
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("qr service %s (status=%d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("qr service %s: %v", e.Operation, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new QR service error.
func NewServiceError(operation string, statusCode int, err error) *ServiceError {
	return &ServiceError{Operation: operation, StatusCode: statusCode, Err: err}
}
