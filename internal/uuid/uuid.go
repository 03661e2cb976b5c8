// Package uuid issues and checks the identifiers used as primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// canonicalLen is the length of the hyphenated 8-4-4-4-12 form.
const canonicalLen = 36

// New returns a time-ordered UUIDv7 string. IDs created by one process sort
// in creation order.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s is a UUID in canonical hyphenated form. Stores
// treat anything else as an unknown ID, so braced, URN and unhyphenated
// spellings never reach a query.
func IsValid(s string) bool {
	if len(s) != canonicalLen {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}
