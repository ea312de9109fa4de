// Package repository implements the persistence layer on top of
// database/sql. Repositories return sql.ErrNoRows for missing rows
// and leave translation into user-facing errors to the service layer.
package repository

import "strings"

// IsDuplicateKey reports whether err is a MySQL duplicate-key
// violation (error 1062). The unique constraints behind it are the
// actual race-safety backstop for every check-then-insert sequence in
// the services; the in-service existence checks only exist for
// friendly error messages.
func IsDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
