package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindConflict        Kind = "conflict"
	KindHandlerNotFound Kind = "handler_not_found"
	KindConfiguration   Kind = "configuration"
)

// Error carries the failure kind plus the entity/id it refers to, so the
// transport layer can render a precise response without string matching.
type Error struct {
	Kind    Kind
	Message string
	Entity  string
	ID      string
}

func (e *Error) Error() string {
	if e.Entity != "" && e.ID != "" {
		return fmt.Sprintf("%s: %s (%s %s)", e.Kind, e.Message, e.Entity, e.ID)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Entity)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found", Entity: entity, ID: id}
}

func InvalidState(msg string, entity, id string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg, Entity: entity, ID: id}
}

func Conflict(msg string, entity, id string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Entity: entity, ID: id}
}

func HandlerNotFound(requestName string) *Error {
	return &Error{Kind: KindHandlerNotFound, Message: "no handler registered for request", Entity: "request", ID: requestName}
}

func Configuration(capability string) *Error {
	return &Error{Kind: KindConfiguration, Message: "capability not registered", Entity: "capability", ID: capability}
}

// KindOf classifies any error; non-apperr errors map to the empty kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
