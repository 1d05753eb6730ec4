// Package domain holds typed identifiers shared across modules.
package domain

import (
	"github.com/google/uuid"

	dErrors "standsdir/pkg/domain-errors"
)

// BuilderID identifies an exhibition-stand builder listing.
type BuilderID uuid.UUID

// LeadID identifies a client quote request.
type LeadID uuid.UUID

// NewBuilderID returns a random builder ID.
func NewBuilderID() BuilderID { return BuilderID(uuid.New()) }

// NewLeadID returns a random lead ID.
func NewLeadID() LeadID { return LeadID(uuid.New()) }

func (id BuilderID) String() string { return uuid.UUID(id).String() }
func (id LeadID) String() string    { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id BuilderID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the ID is the zero UUID.
func (id LeadID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseBuilderID validates s as a non-nil UUID.
func ParseBuilderID(s string) (BuilderID, error) {
	u, err := parseUUID(s, "builder")
	return BuilderID(u), err
}

// ParseLeadID validates s as a non-nil UUID.
func ParseLeadID(s string) (LeadID, error) {
	u, err := parseUUID(s, "lead")
	return LeadID(u), err
}

func (id BuilderID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id LeadID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }

func (id *BuilderID) UnmarshalText(b []byte) error {
	parsed, err := ParseBuilderID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *LeadID) UnmarshalText(b []byte) error {
	parsed, err := ParseLeadID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}
