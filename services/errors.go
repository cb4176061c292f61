// Package services holds the loyalty core: ownership resolution, the points
// ledger, and the coupon and redemption managers.
package services

import (
	"errors"
	"fmt"

	"pos-backoffice/repository"
)

type Kind int

const (
	KindInvalidID Kind = iota + 1
	KindNotFound
	KindBadRequest
	KindConflict
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindInvalidID:
		return "invalid_id"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every core operation.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind, and by code when the sentinel carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

var (
	ErrInvalidID          = &Error{Kind: KindInvalidID}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrBadRequest         = &Error{Kind: KindBadRequest}
	ErrInsufficientPoints = &Error{Kind: KindBadRequest, Code: "INSUFFICIENT_POINTS"}
	ErrProgramMismatch    = &Error{Kind: KindBadRequest, Code: "LOYALTY_PROGRAM_MISMATCH"}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrDatabase           = &Error{Kind: KindDatabase}
)

func invalidID(id int64) *Error {
	return &Error{Kind: KindInvalidID, Code: "INVALID_ID", Message: fmt.Sprintf("Invalid id: %d", id)}
}

func notFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func badRequest(code, message string) *Error {
	return &Error{Kind: KindBadRequest, Code: code, Message: message}
}

func insufficientPoints(available, required int64) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Code:    ErrInsufficientPoints.Code,
		Message: fmt.Sprintf("Insufficient points: %d available, %d required", available, required),
	}
}

// dbError maps a store failure onto the taxonomy. Errors that already carry
// a kind pass through unchanged.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: KindNotFound, Code: "RESOURCE_NOT_FOUND", Message: "Resource not found", Err: err}
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: KindConflict, Code: "DUPLICATE_RESOURCE", Message: "Resource already exists", Err: err}
	case errors.Is(err, repository.ErrInsufficientBalance):
		return &Error{Kind: KindBadRequest, Code: ErrInsufficientPoints.Code, Message: "Insufficient points", Err: err}
	default:
		return &Error{Kind: KindDatabase, Code: "DATABASE_ERROR", Message: "Database operation failed", Err: err}
	}
}
