// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"fmt"

	"github.com/toeirei/srvinv/internal/db"
)

// Entity names used in errors and audit messages.
const (
	EntityAdmin  = "admin"
	EntityIP     = "ip"
	EntityTag    = "tag"
	EntityStatus = "server_status"
	EntityType   = "server_type"
	EntityServer = "server"
)

// Kind classifies an Error.
type Kind int

const (
	// KindType: the raw value is not of the expected type (e.g. a non-integer id).
	KindType Kind = iota + 1
	// KindLength: the value is shorter or longer than allowed.
	KindLength
	// KindCharset: the value contains characters outside the allowed set.
	KindCharset
	// KindCapital: the value does not start with an uppercase letter.
	KindCapital
	// KindNotResolved: a name did not resolve to exactly one row.
	KindNotResolved
	// KindNotFound: a lookup by id found no row.
	KindNotFound
)

var kindNames = map[Kind]string{
	KindType:        "type",
	KindLength:      "length",
	KindCharset:     "charset",
	KindCapital:     "capitalization",
	KindNotResolved: "not resolved",
	KindNotFound:    "not found",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type returned by validators, resolvers and the
// CRUD operations. For KindNotResolved, Entity names the referenced entity
// that failed to resolve.
type Error struct {
	Entity string
	Field  string
	Kind   Kind
	Value  string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Field == "" {
		return e.Entity + ": " + msg
	}
	return e.Entity + " " + e.Field + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error whose non-zero Entity, Field and Kind all equal
// e's. Zero fields in target act as wildcards.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return (t.Entity == "" || t.Entity == e.Entity) &&
		(t.Field == "" || t.Field == e.Field) &&
		(t.Kind == 0 || t.Kind == e.Kind)
}

// Resolution sentinels, one per referenced entity.
var (
	ErrStatusNotFound = &Error{Entity: EntityStatus, Kind: KindNotResolved}
	ErrTypeNotFound   = &Error{Entity: EntityType, Kind: KindNotResolved}
	ErrIPNotFound     = &Error{Entity: EntityIP, Kind: KindNotResolved}
	ErrTagNotFound    = &Error{Entity: EntityTag, Kind: KindNotResolved}
	ErrAdminNotFound  = &Error{Entity: EntityAdmin, Kind: KindNotResolved}
)

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindType, KindLength, KindCharset, KindCapital:
		return true
	}
	return false
}

// IsNotFound reports whether err means a name or id did not match a row.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) && (e.Kind == KindNotResolved || e.Kind == KindNotFound) {
		return true
	}
	return errors.Is(err, db.ErrNotFound)
}

// IsConflict reports whether err is a store conflict: a duplicate unique
// value or a delete of a row that is still referenced.
func IsConflict(err error) bool {
	return errors.Is(err, db.ErrDuplicate) || errors.Is(err, db.ErrInUse)
}

func notFound(entity string, id int) error {
	return &Error{
		Entity: entity,
		Field:  "id",
		Kind:   KindNotFound,
		Value:  fmt.Sprint(id),
		Msg:    fmt.Sprintf("no %s with id %d", entity, id),
		Err:    db.ErrNotFound,
	}
}

// wrapStore turns a store ErrNotFound for id into the entity-level error and
// passes everything else through.
func wrapStore(entity string, id int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrNotFound) {
		return notFound(entity, id)
	}
	return err
}
