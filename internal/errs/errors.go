// Package errs defines the typed errors services return and handlers
// translate into HTTP responses. Each type maps to exactly one status
// code and carries a precise, user-facing message naming the offending
// field or value; that text is part of the API contract and is asserted
// on literally by tests.
package errs

import "fmt"

// NotFoundError signals a dangling reference or a missing target id.
// Handlers translate it into HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError signals a natural-key uniqueness violation. Handlers
// translate it into HTTP 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// PermissionError signals that an authenticated caller is not the
// owner of the targeted resource. Handlers translate it into HTTP 403.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

// ValidationError carries field-name to message mappings for malformed
// input, caught before any service logic runs. Handlers translate it
// into HTTP 400 with the map as the body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validation failed: %v", e.Fields) }

// InternalError signals an unexpected failure. Handlers log it and
// return a bodyless 500 so internals never leak to clients.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

// ----- NotFound constructors -----

func UserNotFoundByID(id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("User with id %d not found", id)}
}

func UserNotFoundByEmail(email string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("User with email %s not found", email)}
}

func RoleNotFoundByID(id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Role with id %d not found", id)}
}

func RoleNotFoundByName(name string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Role with name %s not found", name)}
}

func MovieNotFoundByID(id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Movie with id %d not found", id)}
}

func MovieNotFoundByTitle(title string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Movie with title %s not found", title)}
}

func MovieClassificationNotFoundByID(id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Movie classification with id %d not found", id)}
}

func ReviewNotFoundByID(id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Review with id %d not found", id)}
}

func GenreNotFoundByID(id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Genre with id %d not found", id)}
}

// GenresNotFoundByIDs reports every missing genre id from a payload in
// a single error rather than stopping at the first one.
func GenresNotFoundByIDs(ids []uint64) *NotFoundError {
	if len(ids) == 1 {
		return GenreNotFoundByID(ids[0])
	}
	list := ""
	for i, id := range ids {
		if i > 0 {
			list += ", "
		}
		list += fmt.Sprintf("%d", id)
	}
	return &NotFoundError{Message: fmt.Sprintf("Genres with ids %s not found", list)}
}

// ----- Conflict constructors -----

func EmailTaken(email string) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf("Email %s is taken", email)}
}

func NameTaken(name string) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf("Name %s is taken", name)}
}

func TitleTaken(title string) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf("Title %s is taken", title)}
}

func ReviewExists(userID, movieID uint64) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf("Review from user with id %d of movie with id %d already exists", userID, movieID)}
}

// NotAuthor is returned by the own-scoped review operations when the
// caller is not the review's author.
func NotAuthor() *PermissionError {
	return &PermissionError{Message: "You are not the author"}
}
