package workflow

import (
	"errors"
	"fmt"
)

// Kind categorizes a workflow failure. Callers branch on the kind, never on
// the message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a workflow failure with a category and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error, defaulting to KindInternal.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindInternal
}

func validationErr(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundErr(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflictErr(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func internalErr(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}
