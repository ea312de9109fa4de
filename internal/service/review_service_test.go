package service

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/moviemetrics/movie-metrics/internal/errs"
	"github.com/moviemetrics/movie-metrics/internal/repository"
)

const reviewSelectByID = "SELECT id,movie_id,author_id,score,content,created_at,updated_at FROM reviews WHERE id=? LIMIT 1"

func reviewServiceOver(t *testing.T) (*ReviewService, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return NewReviewService(
		repository.NewReviewRepo(db),
		repository.NewMovieRepo(db),
		repository.NewUserRepo(db),
	), mock
}

func TestReviewCreateRejectsUnknownMovie(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery("SELECT 1 FROM movies WHERE id=? LIMIT 1").
		WithArgs(uint64(8)).WillReturnError(errNoRows())

	_, err := svc.Create(context.Background(), 5, ReviewInput{MovieID: 8, Score: 4, Content: "Great."})
	require.EqualError(t, err, "Movie with id 8 not found")
	verify(t, mock)
}

func TestReviewCreateAllowsAtMostOnePerMovieAndAuthor(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery("SELECT 1 FROM movies WHERE id=? LIMIT 1").
		WithArgs(uint64(8)).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM reviews WHERE movie_id=? AND author_id=? LIMIT 1").
		WithArgs(uint64(8), uint64(5)).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	_, err := svc.Create(context.Background(), 5, ReviewInput{MovieID: 8, Score: 4, Content: "Great."})
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Review from user with id 5 of movie with id 8 already exists", conflict.Error())
	verify(t, mock)
}

func TestReviewCreatePersists(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery("SELECT 1 FROM movies WHERE id=? LIMIT 1").
		WithArgs(uint64(8)).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM reviews WHERE movie_id=? AND author_id=? LIMIT 1").
		WithArgs(uint64(8), uint64(5)).WillReturnError(errNoRows())
	mock.ExpectExec("INSERT INTO reviews (movie_id, author_id, score, content) VALUES (?,?,?,?)").
		WithArgs(uint64(8), uint64(5), int16(4), "Great.").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).
		WillReturnRows(reviewRow(21, 8, 5, 4, "Great."))

	review, err := svc.Create(context.Background(), 5, ReviewInput{MovieID: 8, Score: 4, Content: "Great."})
	require.NoError(t, err)
	require.Equal(t, uint64(21), review.ID)
	require.Equal(t, uint64(5), review.AuthorID)
	verify(t, mock)
}

func TestReviewUpdateOwnChecksExistenceBeforeAuthorship(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	// A nonexistent review must report NotFound even when the caller
	// would not own it; the author check never runs.
	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).WillReturnError(errNoRows())

	_, err := svc.UpdateOwn(context.Background(), 99, 21, ReviewInput{Score: 2, Content: "Meh."})
	require.EqualError(t, err, "Review with id 21 not found")
	verify(t, mock)
}

func TestReviewUpdateOwnRejectsNonAuthor(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).
		WillReturnRows(reviewRow(21, 8, 5, 4, "Great."))

	_, err := svc.UpdateOwn(context.Background(), 99, 21, ReviewInput{Score: 2, Content: "Meh."})
	var perm *errs.PermissionError
	require.ErrorAs(t, err, &perm)
	require.Equal(t, "You are not the author", perm.Error())
	verify(t, mock)
}

func TestReviewUpdateOwnByAuthorSucceeds(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).
		WillReturnRows(reviewRow(21, 8, 5, 4, "Great."))
	mock.ExpectExec("UPDATE reviews SET score=?, content=? WHERE id=?").
		WithArgs(int16(2), "Changed my mind.", uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).
		WillReturnRows(reviewRow(21, 8, 5, 2, "Changed my mind."))

	review, err := svc.UpdateOwn(context.Background(), 5, 21, ReviewInput{Score: 2, Content: "Changed my mind."})
	require.NoError(t, err)
	require.Equal(t, int16(2), review.Score)
	verify(t, mock)
}

func TestReviewDeleteOwnRejectsNonAuthor(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).
		WillReturnRows(reviewRow(21, 8, 5, 4, "Great."))

	_, err := svc.DeleteOwn(context.Background(), 99, 21)
	require.EqualError(t, err, "You are not the author")
	verify(t, mock)
}

func TestReviewDeleteReturnsSnapshot(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery(reviewSelectByID).WithArgs(uint64(21)).
		WillReturnRows(reviewRow(21, 8, 5, 4, "Great."))
	mock.ExpectExec("DELETE FROM reviews WHERE id=?").
		WithArgs(uint64(21)).WillReturnResult(sqlmock.NewResult(0, 1))

	review, err := svc.Delete(context.Background(), 21)
	require.NoError(t, err)
	require.Equal(t, "Great.", review.Content)
	verify(t, mock)
}

func TestReviewListOfUnknownMovieReportsNotFound(t *testing.T) {
	svc, mock := reviewServiceOver(t)

	mock.ExpectQuery("SELECT 1 FROM movies WHERE id=? LIMIT 1").
		WithArgs(uint64(8)).WillReturnError(errNoRows())

	_, err := svc.GetAllOfMovie(context.Background(), 8)
	require.EqualError(t, err, "Movie with id 8 not found")
	verify(t, mock)
}
