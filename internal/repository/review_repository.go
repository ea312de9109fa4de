package repository

import (
	"context"
	"database/sql"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewColumns = "id,movie_id,author_id,score,content,created_at,updated_at"

// Create inserts a review and returns its id.
func (r *ReviewRepo) Create(ctx context.Context, movieID, authorID uint64, score int16, content string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (movie_id, author_id, score, content) VALUES (?,?,?,?)",
		movieID, authorID, score, content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a review by id.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	var rev model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id=? LIMIT 1",
		id).Scan(&rev.ID, &rev.MovieID, &rev.AuthorID, &rev.Score, &rev.Content, &rev.CreatedAt, &rev.UpdatedAt)
	return rev, err
}

// ExistsByMovieAndAuthor reports whether the (movie, author) pair
// already has a review.
func (r *ReviewRepo) ExistsByMovieAndAuthor(ctx context.Context, movieID, authorID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reviews WHERE movie_id=? AND author_id=? LIMIT 1",
		movieID, authorID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// GetAll returns every review ordered by id.
func (r *ReviewRepo) GetAll(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, "SELECT "+reviewColumns+" FROM reviews ORDER BY id")
}

// ListByMovie returns all reviews of one movie.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	return r.list(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE movie_id=? ORDER BY id", movieID)
}

// ListByAuthor returns all reviews written by one user.
func (r *ReviewRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Review, error) {
	return r.list(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE author_id=? ORDER BY id", authorID)
}

// Update replaces the review's score and content.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, score int16, content string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET score=?, content=? WHERE id=?", score, content, id)
	return err
}

// Delete removes a review by id.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	return err
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.MovieID, &rev.AuthorID, &rev.Score, &rev.Content, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
