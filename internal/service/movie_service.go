package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moviemetrics/movie-metrics/internal/errs"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
)

// MovieInput carries the mutable fields of a movie. GenreIDs is the
// complete genre set: update replaces the stored set wholesale, there
// are no merge semantics.
type MovieInput struct {
	Title            string
	Description      string
	ClassificationID uint64
	GenreIDs         []uint64
}

// MovieService implements movie CRUD with the uniform validation
// order: title uniqueness, then every foreign key in the payload,
// then the write.
type MovieService struct {
	Movies          *repository.MovieRepo
	Classifications *repository.ClassificationRepo
	Genres          *repository.GenreRepo
}

func NewMovieService(movies *repository.MovieRepo, classifications *repository.ClassificationRepo, genres *repository.GenreRepo) *MovieService {
	return &MovieService{Movies: movies, Classifications: classifications, Genres: genres}
}

// Create validates title uniqueness and all references, then persists
// the movie with its genre links.
func (s *MovieService) Create(ctx context.Context, in MovieInput) (model.Movie, error) {
	_, err := s.Movies.FindByTitle(ctx, in.Title)
	if err == nil {
		return model.Movie{}, errs.TitleTaken(in.Title)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, err
	}

	if err := s.checkReferences(ctx, in); err != nil {
		return model.Movie{}, err
	}

	id, err := s.Movies.Create(ctx, in.Title, in.Description, in.ClassificationID, in.GenreIDs)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return model.Movie{}, errs.TitleTaken(in.Title)
		}
		return model.Movie{}, err
	}
	return s.Movies.GetByID(ctx, id)
}

// Get fetches a movie by id.
func (s *MovieService) Get(ctx context.Context, id uint64) (model.Movie, error) {
	movie, err := s.Movies.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, errs.MovieNotFoundByID(id)
	}
	return movie, err
}

// GetByTitle fetches a movie by title, ignoring case.
func (s *MovieService) GetByTitle(ctx context.Context, title string) (model.Movie, error) {
	movie, err := s.Movies.FindByTitle(ctx, title)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, errs.MovieNotFoundByTitle(title)
	}
	return movie, err
}

// GetAll returns every movie.
func (s *MovieService) GetAll(ctx context.Context) ([]model.Movie, error) {
	return s.Movies.GetAll(ctx)
}

// Update replaces the movie record and its full genre set. The title
// uniqueness check excludes the record being updated.
func (s *MovieService) Update(ctx context.Context, id uint64, in MovieInput) (model.Movie, error) {
	exists, err := s.Movies.ExistsByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}
	if !exists {
		return model.Movie{}, errs.MovieNotFoundByID(id)
	}

	found, err := s.Movies.FindByTitle(ctx, in.Title)
	if err == nil && found.ID != id {
		return model.Movie{}, errs.TitleTaken(in.Title)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, err
	}

	if err := s.checkReferences(ctx, in); err != nil {
		return model.Movie{}, err
	}

	if err := s.Movies.Update(ctx, id, in.Title, in.Description, in.ClassificationID, in.GenreIDs); err != nil {
		if repository.IsDuplicateKey(err) {
			return model.Movie{}, errs.TitleTaken(in.Title)
		}
		return model.Movie{}, err
	}
	return s.Movies.GetByID(ctx, id)
}

// Delete removes a movie and returns the pre-deletion snapshot.
func (s *MovieService) Delete(ctx context.Context, id uint64) (model.Movie, error) {
	movie, err := s.Movies.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, errs.MovieNotFoundByID(id)
	}
	if err != nil {
		return model.Movie{}, err
	}
	if err := s.Movies.Delete(ctx, id); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

// checkReferences validates every foreign key in the payload before
// any write happens. All genre ids are checked in one pass so the
// error names every missing one, not just the first.
func (s *MovieService) checkReferences(ctx context.Context, in MovieInput) error {
	exists, err := s.Classifications.ExistsByID(ctx, in.ClassificationID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.MovieClassificationNotFoundByID(in.ClassificationID)
	}

	if len(in.GenreIDs) == 0 {
		return nil
	}
	present, err := s.Genres.ExistingIDs(ctx, in.GenreIDs)
	if err != nil {
		return err
	}
	var missing []uint64
	seen := make(map[uint64]bool, len(in.GenreIDs))
	for _, gid := range in.GenreIDs {
		if !present[gid] && !seen[gid] {
			missing = append(missing, gid)
			seen[gid] = true
		}
	}
	if len(missing) > 0 {
		return errs.GenresNotFoundByIDs(missing)
	}
	return nil
}
