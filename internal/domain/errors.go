// Package domain provides shared domain-level errors.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so that outer layers can map it to a
// transport status without parsing messages.
type Kind string

const (
	KindNameRequired      Kind = "name_required"
	KindDuplicateName     Kind = "duplicate_name"
	KindNotFound          Kind = "not_found"
	KindNoDutyAssigned    Kind = "no_duty_assigned"
	KindNoActionAssigned  Kind = "no_action_assigned"
	KindIncapacitated     Kind = "incapacitated"
	KindInvalidAction     Kind = "invalid_action"
	KindCapabilityMissing Kind = "capability_missing"
	KindValidation        Kind = "validation"
)

// Error is a classified domain failure carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is reports whether target is a domain error of the same kind, so that
// errors.Is(err, domain.ErrNotFound) matches any not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf builds a domain error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks. Their messages are generic; errors
// returned by the domain carry specific text.
var (
	ErrNameRequired      = &Error{Kind: KindNameRequired, Message: "name is required"}
	ErrDuplicateName     = &Error{Kind: KindDuplicateName, Message: "already exists"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrNoDutyAssigned    = &Error{Kind: KindNoDutyAssigned, Message: "no duty assigned"}
	ErrNoActionAssigned  = &Error{Kind: KindNoActionAssigned, Message: "no action assigned"}
	ErrIncapacitated     = &Error{Kind: KindIncapacitated, Message: "incapacitated"}
	ErrInvalidAction     = &Error{Kind: KindInvalidAction, Message: "invalid action"}
	ErrCapabilityMissing = &Error{Kind: KindCapabilityMissing, Message: "capability missing"}
	ErrValidation        = &Error{Kind: KindValidation, Message: "validation error"}
)

// KindOf returns the kind of the first domain error in err's chain,
// or "" if there is none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
