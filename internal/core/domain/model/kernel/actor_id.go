package kernel

import (
	"fmt"

	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrActorIDIsNotConstructed indicates an ActorID that was not created through
// one of the factory functions. Returned when validating a zero-value ActorID.
var ErrActorIDIsNotConstructed = errs.NewValueIsRequiredError(
	"ActorID must be created via NewActorID or ActorIDFromString",
)

// ActorID identifies the user performing a status-changing operation.
// Every status-log entry carries the ActorID of whoever triggered it, so
// the append-only history doubles as an audit trail.
//
// ActorID wraps a UUID and is immutable. The zero value is invalid and
// must be constructed via NewActorID or ActorIDFromString.
type ActorID struct {
	id uuid.UUID
}

// NewActorID generates a new random actor identifier.
// Used in tests and fixtures; production actor ids arrive from the
// authentication collaborator as strings and go through ActorIDFromString.
func NewActorID() ActorID {
	return ActorID{id: uuid.New()}
}

// ActorIDFromString parses an actor identifier from its string form.
// Returns an error if the string is not a valid UUID.
func ActorIDFromString(s string) (ActorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ActorID{}, fmt.Errorf("invalid actor id format: %w", err)
	}
	return ActorID{id: id}, nil
}

// String returns the canonical string form of the actor id.
func (a ActorID) String() string {
	return a.id.String()
}

// Bytes returns the underlying uuid.UUID value for persistence mapping.
func (a ActorID) Bytes() uuid.UUID {
	return a.id
}

// IsEqual compares two actor ids by value.
func (a ActorID) IsEqual(other ActorID) bool {
	return a.id == other.id
}

// Validate checks that the actor id was properly constructed.
// Returns ErrActorIDIsNotConstructed for the zero value.
func (a ActorID) Validate() error {
	if a.id == uuid.Nil {
		return ErrActorIDIsNotConstructed
	}
	return nil
}
