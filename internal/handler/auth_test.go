package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviemetrics/movie-metrics/internal/config"
	"github.com/moviemetrics/movie-metrics/internal/repository"
	"github.com/moviemetrics/movie-metrics/internal/service"
	"github.com/moviemetrics/movie-metrics/internal/utils"
)

func authEcho(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTLHours: 1, BcryptCost: bcrypt.MinCost}
	auth := NewAuthHandler(service.NewAuthService(cfg, repository.NewUserRepo(db), repository.NewRoleRepo(db)))

	e := echo.New()
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/register", auth.Register)
	return e, mock
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginWrongPasswordIsOKWithNullToken(t *testing.T) {
	e, mock := authEcho(t)

	hash, err := utils.HashPassword("Password1", bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT u.id,u.email,u.password_hash,u.role_id,u.created_at,u.updated_at FROM users u WHERE LOWER(u.email)=LOWER(?) LIMIT 1").
		WithArgs("dana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role_id", "created_at", "updated_at"}).
			AddRow(7, "dana@example.com", hash, 1, time.Now(), time.Now()))
	mock.ExpectQuery("SELECT id,name FROM roles WHERE id=? LIMIT 1").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "USER"))
	mock.ExpectQuery("SELECT p.id,p.name FROM permissions p JOIN role_permissions rp ON rp.permission_id=p.id WHERE rp.role_id=? ORDER BY p.id").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	rec := postJSON(e, "/auth/login", `{"email":"dana@example.com","password":"WrongPass9"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"token":null,"message":"Incorrect password"}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	e, mock := authEcho(t)

	mock.ExpectQuery("SELECT u.id,u.email,u.password_hash,u.role_id,u.created_at,u.updated_at FROM users u WHERE LOWER(u.email)=LOWER(?) LIMIT 1").
		WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	rec := postJSON(e, "/auth/login", `{"email":"ghost@example.com","password":"Password1"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"User with email ghost@example.com not found"}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsMalformedCredentials(t *testing.T) {
	e, _ := authEcho(t)

	rec := postJSON(e, "/auth/register", `{"email":"nope","password":"weak"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"email":"Email is invalid","password":"Password must be at least 8 characters long"}`, rec.Body.String())
}
