package repository

import (
	"context"
	"database/sql"

	"github.com/moviemetrics/movie-metrics/internal/model"
)

type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = "m.id,m.title,m.description,m.classification_id,c.name,c.brief,m.created_at,m.updated_at"

// Create inserts a movie and its genre links in one transaction and
// returns the new id.
func (r *MovieRepo) Create(ctx context.Context, title, description string, classificationID uint64, genreIDs []uint64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO movies (title, description, classification_id) VALUES (?,?,?)",
		title, description, classificationID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO movie_genres (movie_id, genre_id) VALUES (?,?)", id, gid); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a movie with its classification and genres.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	m, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies m JOIN classifications c ON c.id=m.classification_id WHERE m.id=? LIMIT 1", id))
	if err != nil {
		return m, err
	}
	m.Genres, err = r.genresOf(ctx, m.ID)
	return m, err
}

// FindByTitle fetches a movie by title, ignoring case.
func (r *MovieRepo) FindByTitle(ctx context.Context, title string) (model.Movie, error) {
	m, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies m JOIN classifications c ON c.id=m.classification_id WHERE LOWER(m.title)=LOWER(?) LIMIT 1", title))
	if err != nil {
		return m, err
	}
	m.Genres, err = r.genresOf(ctx, m.ID)
	return m, err
}

// ExistsByID reports whether a movie with the given id exists.
func (r *MovieRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM movies WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// GetAll returns every movie with classification and genres, ordered
// by id.
func (r *MovieRepo) GetAll(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies m JOIN classifications c ON c.id=m.classification_id ORDER BY m.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		var m model.Movie
		var cls model.MovieClassification
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.ClassificationID, &cls.Name, &cls.Brief, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		cls.ID = m.ClassificationID
		m.Classification = &cls
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Genres, err = r.genresOf(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update replaces the movie record and its genre set wholesale in one
// transaction.
func (r *MovieRepo) Update(ctx context.Context, id uint64, title, description string, classificationID uint64, genreIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE movies SET title=?, description=?, classification_id=? WHERE id=?",
		title, description, classificationID, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM movie_genres WHERE movie_id=?", id); err != nil {
		return err
	}
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO movie_genres (movie_id, genre_id) VALUES (?,?)", id, gid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a movie by id. Genre links and reviews go with it
// via ON DELETE CASCADE.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	return err
}

func (r *MovieRepo) scanOne(row *sql.Row) (model.Movie, error) {
	var m model.Movie
	var cls model.MovieClassification
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.ClassificationID, &cls.Name, &cls.Brief, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	cls.ID = m.ClassificationID
	m.Classification = &cls
	return m, nil
}

func (r *MovieRepo) genresOf(ctx context.Context, movieID uint64) ([]model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT g.id,g.name FROM genres g JOIN movie_genres mg ON mg.genre_id=g.id WHERE mg.movie_id=? ORDER BY g.id",
		movieID)
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
