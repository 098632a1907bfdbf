// Package uuid wraps google/uuid so that resource IDs can be bound from URI
// and query parameters by gin.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses the parameter with uuid.Parse from
// https://pkg.go.dev/github.com/google/uuid#Parse
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return ErrInvalid
	}

	*u = UUID{parsed}
	return nil
}

// IsNil reports if the UUID is the zero UUID, which is never a valid resource ID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}
