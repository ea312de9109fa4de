package model

import "time"

// Permission is a single fine-grained capability as stored in the
// `permissions` table. Rows are created only by the seeding routine
// and are immutable afterwards.
//
// Fields:
//  ID   – primary key identifier (well-known, assigned at seed time).
//  Name – unique uppercase snake-case capability string (e.g. DISPLAY_MOVIES).
type Permission struct {
	ID   uint64 `json:"id"`   // permissions.id
	Name string `json:"name"` // permissions.name
}

// Role is a named bundle of permissions from the `roles` table.
// The permission set may be empty and may overlap arbitrarily with
// other roles; ADMIN holding every permission is a seed-time
// convention, not an enforced invariant.
//
// Fields:
//  ID          – primary key identifier (well-known, assigned at seed time).
//  Name        – unique role name (USER, MODERATOR, ADMIN).
//  Permissions – permissions bundled into this role, loaded via role_permissions.
type Role struct {
	ID          uint64       `json:"id"`          // roles.id
	Name        string       `json:"name"`        // roles.name
	Permissions []Permission `json:"permissions"` // via role_permissions join table
}

// User binds credentials to exactly one role. Corresponds to a row
// in the `users` table.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address (case-insensitive).
//  PasswordHash – bcrypt hashed password.
//  RoleID       – foreign key into the roles table.
//  Role         – the referenced role, populated by queries that join it.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	RoleID       uint64    // users.role_id (references roles.id)
	Role         *Role     // loaded role with its permission bundle
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Authorities returns the flattened permission names of the user's
// role. These strings are embedded in access tokens and checked by
// the authorization gate; an unloaded role yields an empty set.
func (u *User) Authorities() []string {
	if u.Role == nil {
		return nil
	}
	out := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		out = append(out, p.Name)
	}
	return out
}
