package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type UserRepo struct {
	DB    *sql.DB
	Roles *RoleRepo
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db, Roles: NewRoleRepo(db)} }

const userColumns = "u.id,u.email,u.password_hash,u.role_id,u.created_at,u.updated_at"

// Create inserts a user and returns its id. The password must
// already be hashed.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string, roleID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role_id) VALUES (?,?,?)",
		normalizeEmail(email), passwordHash, roleID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email with its role and
// permission bundle loaded.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users u WHERE LOWER(u.email)=LOWER(?) LIMIT 1",
		normalizeEmail(email)).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}
	return r.attachRole(ctx, u)
}

// GetByID fetches a user by id with its role and permission bundle
// loaded.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users u WHERE u.id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}
	return r.attachRole(ctx, u)
}

// ExistsByID reports whether a user with the given id exists.
func (r *UserRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// GetAll returns every user with the role name loaded (permission
// bundles are skipped; listings do not need them).
func (r *UserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+",r.name FROM users u JOIN roles r ON r.id=u.role_id ORDER BY u.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		var roleName string
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt, &roleName); err != nil {
			return nil, err
		}
		u.Role = &model.Role{ID: u.RoleID, Name: roleName}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update replaces the user's email, password hash and role in place.
func (r *UserRepo) Update(ctx context.Context, id uint64, email, passwordHash string, roleID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, password_hash=?, role_id=? WHERE id=?",
		normalizeEmail(email), passwordHash, roleID, id)
	return err
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	return err
}

func (r *UserRepo) attachRole(ctx context.Context, u model.User) (model.User, error) {
	role, err := r.Roles.GetByID(ctx, u.RoleID)
	if err != nil {
		return u, err
	}
	u.Role = &role
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
