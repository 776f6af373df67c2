// Package ids generates record identifiers.
//
// Identifiers are ULIDs: 26 Crockford base32 characters holding a 48-bit
// millisecond timestamp followed by 80 random bits. Identifiers created in
// different milliseconds sort lexicographically in creation order.
package ids

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Length is the fixed length of every identifier.
const Length = ulid.EncodedSize

// New returns a fresh identifier. Entropy comes straight from crypto/rand,
// so callers need no coordination across goroutines or processes.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns an identifier whose timestamp component is t.
func NewAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Time returns the creation time encoded in id.
func Time(id string) (time.Time, error) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
