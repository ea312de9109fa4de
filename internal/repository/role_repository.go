package repository

import (
	"context"
	"database/sql"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// FindByName fetches a role with its permission bundle by name,
// ignoring case.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM roles WHERE LOWER(name)=LOWER(?) LIMIT 1",
		name).Scan(&role.ID, &role.Name)
	if err != nil {
		return role, err
	}
	role.Permissions, err = r.permissionsOf(ctx, role.ID)
	return role, err
}

// GetByID fetches a role with its permission bundle by id.
func (r *RoleRepo) GetByID(ctx context.Context, id uint64) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM roles WHERE id=? LIMIT 1",
		id).Scan(&role.ID, &role.Name)
	if err != nil {
		return role, err
	}
	role.Permissions, err = r.permissionsOf(ctx, role.ID)
	return role, err
}

// ExistsByID reports whether a role with the given id exists.
func (r *RoleRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM roles WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// Create inserts a role with an explicit well-known id and links its
// permission bundle in one transaction. Only the seeding routine
// calls this.
func (r *RoleRepo) Create(ctx context.Context, id uint64, name string, permissionIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO roles (id, name) VALUES (?,?)", id, name); err != nil {
		return err
	}
	for _, pid := range permissionIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO role_permissions (role_id, permission_id) VALUES (?,?)", id, pid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetAll returns every role with its permission bundle, ordered by id.
func (r *RoleRepo) GetAll(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Permissions, err = r.permissionsOf(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *RoleRepo) permissionsOf(ctx context.Context, roleID uint64) ([]model.Permission, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT p.id,p.name FROM permissions p JOIN role_permissions rp ON rp.permission_id=p.id WHERE rp.role_id=? ORDER BY p.id",
		roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Permission
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
