package model

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID string for use as an entity identifier.
func NewID() string {
	return ulid.Make().String()
}

// DeterministicID builds a ULID from an explicit timestamp and entropy
// source. Identical inputs produce identical identifiers.
func DeterministicID(ts time.Time, entropy io.Reader) (string, error) {
	id, err := ulid.New(ulid.Timestamp(ts), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
