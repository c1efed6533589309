// Package repository contains the data access layer. Each entity gets a
// small repo struct around *sql.DB with sentinel errors so handlers can
// map failures to HTTP statuses without string matching.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they may not touch. Handlers translate this into a 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// dependent state, such as deleting a genre that still has movies or
// booking a seat that was taken between seat-map load and checkout.
// Handlers translate this into a 409.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether a MySQL error is a unique-constraint
// violation (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
