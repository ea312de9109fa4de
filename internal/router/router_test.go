package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviemetrics/movie-metrics/internal/config"
	"github.com/moviemetrics/movie-metrics/internal/handler"
	"github.com/moviemetrics/movie-metrics/internal/middleware"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
	"github.com/moviemetrics/movie-metrics/internal/service"
	"github.com/moviemetrics/movie-metrics/internal/utils"
)

const routerTestSecret = "router-test-secret"

// fullStack registers the real routes over sqlmock-backed services
// with a miniredis-backed response cache, the way main wires them.
func fullStack(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.Config{JWTSecret: routerTestSecret, TokenTTLHours: 1, BcryptCost: bcrypt.MinCost}
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	genres := repository.NewGenreRepo(db)
	classifications := repository.NewClassificationRepo(db)
	movies := repository.NewMovieRepo(db)
	reviews := repository.NewReviewRepo(db)

	movieSvc := service.NewMovieService(movies, classifications, genres)
	reviewSvc := service.NewReviewService(reviews, movies, users)

	cache := middleware.NewResponseCache(config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}, rdb)

	e := echo.New()
	Register(e, Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(cfg, users, roles)),
		Users:   handler.NewUserHandler(service.NewUserService(users, roles, bcrypt.MinCost)),
		Movies:  handler.NewMovieHandler(movieSvc),
		Reviews: handler.NewReviewHandler(reviewSvc, movieSvc),
		Catalog: handler.NewCatalogHandler(service.NewCatalogService(genres, classifications, roles, repository.NewPermissionRepo(db))),
		Health:  handler.NewHealthHandler(db),
	}, routerTestSecret, cache)
	return e, mock
}

func tokenWith(t *testing.T, authorities ...string) string {
	t.Helper()
	token, err := utils.NewAccessToken(routerTestSecret, 7, "dana@example.com", authorities, 1)
	require.NoError(t, err)
	return "Bearer " + token.Token
}

func doGet(e *echo.Echo, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// A warmed cache entry must never be replayed past the token gate: an
// anonymous request to a cached URL is still a 401, and the entry
// stays usable for authorized callers afterwards.
func TestCachedEntryIsNeverServedWithoutToken(t *testing.T) {
	e, mock := fullStack(t)

	mock.ExpectQuery("SELECT m.id,m.title,m.description,m.classification_id,c.name,c.brief,m.created_at,m.updated_at FROM movies m JOIN classifications c ON c.id=m.classification_id ORDER BY m.id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "classification_id", "name", "brief", "created_at", "updated_at"}).
			AddRow(1, "Heat", "A heist drama.", 4, "Restricted", "R", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT g.id,g.name FROM genres g JOIN movie_genres mg ON mg.genre_id=g.id WHERE mg.movie_id=? ORDER BY g.id").
		WithArgs(uint64(1)).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	warm := doGet(e, "/api/movies", tokenWith(t, model.PermDisplayMovies))
	require.Equal(t, http.StatusOK, warm.Code)
	require.Equal(t, "MISS", warm.Header().Get("X-Cache"))

	anon := doGet(e, "/api/movies", "")
	require.Equal(t, http.StatusUnauthorized, anon.Code)
	require.Empty(t, anon.Header().Get("X-Cache"))
	require.NotContains(t, anon.Body.String(), "Heat")

	// No further SQL: the authorized caller is served from the cache.
	hit := doGet(e, "/api/movies", tokenWith(t, model.PermDisplayMovies))
	require.Equal(t, http.StatusOK, hit.Code)
	require.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A cache hit must not skip the authority check either: a caller
// without the route's permission gets 403 even for a warmed URL.
func TestCachedEntryIsNeverServedWithoutAuthority(t *testing.T) {
	e, mock := fullStack(t)

	mock.ExpectQuery("SELECT id,name FROM genres ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Action"))

	warm := doGet(e, "/api/genres", tokenWith(t, model.PermDisplayMovies))
	require.Equal(t, http.StatusOK, warm.Code)

	denied := doGet(e, "/api/genres", tokenWith(t))
	require.Equal(t, http.StatusForbidden, denied.Code)
	require.NotContains(t, denied.Body.String(), "Action")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnReviewListingRequiresDisplayAuthority(t *testing.T) {
	e, _ := fullStack(t)

	rec := doGet(e, "/api/reviews/own", tokenWith(t))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())

	rec = doGet(e, "/api/reviews/own", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// User and movie updates are PATCH routes; PUT is not registered.
func TestUpdatesAreRegisteredAsPatch(t *testing.T) {
	e, _ := fullStack(t)

	for _, path := range []string{"/api/users/7", "/api/movies/7"} {
		patch := httptest.NewRequest(http.MethodPatch, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, patch)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "PATCH %s should exist behind the gate", path)

		put := httptest.NewRequest(http.MethodPut, path, nil)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, put)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, "PUT %s should not be registered", path)
	}
}
