package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moviemetrics/movie-metrics/internal/errs"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
)

// ReviewInput carries the mutable fields of a review.
type ReviewInput struct {
	MovieID uint64
	Score   int16
	Content string
}

// ReviewService implements review CRUD plus the ownership-scoped
// variants. The caller identity is an explicit parameter on every
// operation that needs it; there is no ambient security context.
type ReviewService struct {
	Reviews *repository.ReviewRepo
	Movies  *repository.MovieRepo
	Users   *repository.UserRepo
}

func NewReviewService(reviews *repository.ReviewRepo, movies *repository.MovieRepo, users *repository.UserRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Movies: movies, Users: users}
}

// Create makes the caller the author of a new review. The movie must
// exist and the (movie, caller) pair must not already have one.
func (s *ReviewService) Create(ctx context.Context, callerID uint64, in ReviewInput) (model.Review, error) {
	exists, err := s.Movies.ExistsByID(ctx, in.MovieID)
	if err != nil {
		return model.Review{}, err
	}
	if !exists {
		return model.Review{}, errs.MovieNotFoundByID(in.MovieID)
	}

	taken, err := s.Reviews.ExistsByMovieAndAuthor(ctx, in.MovieID, callerID)
	if err != nil {
		return model.Review{}, err
	}
	if taken {
		return model.Review{}, errs.ReviewExists(callerID, in.MovieID)
	}

	id, err := s.Reviews.Create(ctx, in.MovieID, callerID, in.Score, in.Content)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return model.Review{}, errs.ReviewExists(callerID, in.MovieID)
		}
		return model.Review{}, err
	}
	return s.Reviews.GetByID(ctx, id)
}

// Get fetches a review by id.
func (s *ReviewService) Get(ctx context.Context, id uint64) (model.Review, error) {
	review, err := s.Reviews.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Review{}, errs.ReviewNotFoundByID(id)
	}
	return review, err
}

// GetAll returns every review.
func (s *ReviewService) GetAll(ctx context.Context) ([]model.Review, error) {
	return s.Reviews.GetAll(ctx)
}

// GetAllOfMovie returns the reviews of one movie, failing if the
// movie itself does not exist.
func (s *ReviewService) GetAllOfMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	exists, err := s.Movies.ExistsByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.MovieNotFoundByID(movieID)
	}
	return s.Reviews.ListByMovie(ctx, movieID)
}

// GetAllOfUser returns the reviews written by one user, failing if
// the user does not exist.
func (s *ReviewService) GetAllOfUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	exists, err := s.Users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.UserNotFoundByID(userID)
	}
	return s.Reviews.ListByAuthor(ctx, userID)
}

// Update replaces score and content of any review (privileged).
func (s *ReviewService) Update(ctx context.Context, id uint64, in ReviewInput) (model.Review, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Review{}, err
	}
	if err := s.Reviews.Update(ctx, id, in.Score, in.Content); err != nil {
		return model.Review{}, err
	}
	return s.Reviews.GetByID(ctx, id)
}

// UpdateOwn replaces score and content of the caller's own review.
// The author check runs strictly after the existence check: a
// nonexistent review reports NotFound even to a non-owner.
func (s *ReviewService) UpdateOwn(ctx context.Context, callerID, id uint64, in ReviewInput) (model.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	if review.AuthorID != callerID {
		return model.Review{}, errs.NotAuthor()
	}
	if err := s.Reviews.Update(ctx, id, in.Score, in.Content); err != nil {
		return model.Review{}, err
	}
	return s.Reviews.GetByID(ctx, id)
}

// Delete removes any review (privileged) and returns the pre-deletion
// snapshot.
func (s *ReviewService) Delete(ctx context.Context, id uint64) (model.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return model.Review{}, err
	}
	return review, nil
}

// DeleteOwn removes the caller's own review, with the same check
// ordering as UpdateOwn.
func (s *ReviewService) DeleteOwn(ctx context.Context, callerID, id uint64) (model.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	if review.AuthorID != callerID {
		return model.Review{}, errs.NotAuthor()
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return model.Review{}, err
	}
	return review, nil
}
