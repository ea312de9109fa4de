package repository

import (
	"context"
	"database/sql"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type ClassificationRepo struct{ DB *sql.DB }

func NewClassificationRepo(db *sql.DB) *ClassificationRepo { return &ClassificationRepo{DB: db} }

// FindByName fetches a classification by name, ignoring case.
func (r *ClassificationRepo) FindByName(ctx context.Context, name string) (model.MovieClassification, error) {
	var c model.MovieClassification
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,brief FROM classifications WHERE LOWER(name)=LOWER(?) LIMIT 1",
		name).Scan(&c.ID, &c.Name, &c.Brief)
	return c, err
}

// Create inserts a classification with an explicit well-known id.
// Only the seeding routine calls this.
func (r *ClassificationRepo) Create(ctx context.Context, id uint64, name, brief string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO classifications (id, name, brief) VALUES (?,?,?)", id, name, brief)
	return err
}

// ExistsByID reports whether a classification with the given id exists.
func (r *ClassificationRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM classifications WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// GetAll returns every classification ordered by id.
func (r *ClassificationRepo) GetAll(ctx context.Context) ([]model.MovieClassification, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name,brief FROM classifications ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MovieClassification
	for rows.Next() {
		var c model.MovieClassification
		if err := rows.Scan(&c.ID, &c.Name, &c.Brief); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
