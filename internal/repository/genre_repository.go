package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// FindByName fetches a genre by name, ignoring case.
func (r *GenreRepo) FindByName(ctx context.Context, name string) (model.Genre, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM genres WHERE LOWER(name)=LOWER(?) LIMIT 1",
		name).Scan(&g.ID, &g.Name)
	return g, err
}

// Create inserts a genre with an explicit well-known id. Only the
// seeding routine calls this.
func (r *GenreRepo) Create(ctx context.Context, id uint64, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO genres (id, name) VALUES (?,?)", id, name)
	return err
}

// GetAll returns every genre ordered by id.
func (r *GenreRepo) GetAll(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ExistingIDs reports which of the given genre ids are present. The
// result set lets callers name every missing reference at once
// instead of failing on the first.
func (r *GenreRepo) ExistingIDs(ctx context.Context, ids []uint64) (map[uint64]bool, error) {
	found := make(map[uint64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id FROM genres WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}
