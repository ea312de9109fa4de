package repository

import (
	"context"
	"database/sql"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type PermissionRepo struct{ DB *sql.DB }

func NewPermissionRepo(db *sql.DB) *PermissionRepo { return &PermissionRepo{DB: db} }

// FindByName fetches a permission by name, ignoring case.
func (r *PermissionRepo) FindByName(ctx context.Context, name string) (model.Permission, error) {
	var p model.Permission
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM permissions WHERE LOWER(name)=LOWER(?) LIMIT 1",
		name).Scan(&p.ID, &p.Name)
	return p, err
}

// Create inserts a permission with an explicit well-known id. Only
// the seeding routine calls this.
func (r *PermissionRepo) Create(ctx context.Context, id uint64, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO permissions (id, name) VALUES (?,?)", id, name)
	return err
}

// GetAll returns every permission ordered by id.
func (r *PermissionRepo) GetAll(ctx context.Context) ([]model.Permission, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM permissions ORDER BY id")
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
