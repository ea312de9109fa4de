package service

import (
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// newMock opens a sqlmock connection with exact query matching so the
// tests assert the literal SQL each operation runs.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func verify(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	require.NoError(t, mock.ExpectationsWereMet())
}

var seedTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func userRow(id uint64, email, hash string, roleID uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "role_id", "created_at", "updated_at"}).
		AddRow(id, email, hash, roleID, seedTime, seedTime)
}

func roleRow(id uint64, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name"}).AddRow(id, name)
}

func permissionRows(pairs ...any) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name"})
	for i := 0; i < len(pairs); i += 2 {
		rows.AddRow(pairs[i], pairs[i+1])
	}
	return rows
}

func movieRow(id uint64, title, description string, clsID uint64, clsName, clsBrief string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "classification_id", "name", "brief", "created_at", "updated_at"}).
		AddRow(id, title, description, clsID, clsName, clsBrief, seedTime, seedTime)
}

func reviewRow(id, movieID, authorID uint64, score int16, content string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "movie_id", "author_id", "score", "content", "created_at", "updated_at"}).
		AddRow(id, movieID, authorID, score, content, seedTime, seedTime)
}

// expectUserByEmail stubs the lookup plus the role and permission
// loads that come with it.
func expectUserByEmail(mock sqlmock.Sqlmock, email string, rows *sqlmock.Rows, roleID uint64, roleName string) {
	mock.ExpectQuery("SELECT u.id,u.email,u.password_hash,u.role_id,u.created_at,u.updated_at FROM users u WHERE LOWER(u.email)=LOWER(?) LIMIT 1").
		WithArgs(email).WillReturnRows(rows)
	mock.ExpectQuery("SELECT id,name FROM roles WHERE id=? LIMIT 1").
		WithArgs(roleID).WillReturnRows(roleRow(roleID, roleName))
	mock.ExpectQuery("SELECT p.id,p.name FROM permissions p JOIN role_permissions rp ON rp.permission_id=p.id WHERE rp.role_id=? ORDER BY p.id").
		WithArgs(roleID).WillReturnRows(permissionRows())
}

// expectUserByID mirrors expectUserByEmail for the id lookup.
func expectUserByID(mock sqlmock.Sqlmock, id uint64, rows *sqlmock.Rows, roleID uint64, roleName string) {
	mock.ExpectQuery("SELECT u.id,u.email,u.password_hash,u.role_id,u.created_at,u.updated_at FROM users u WHERE u.id=? LIMIT 1").
		WithArgs(id).WillReturnRows(rows)
	mock.ExpectQuery("SELECT id,name FROM roles WHERE id=? LIMIT 1").
		WithArgs(roleID).WillReturnRows(roleRow(roleID, roleName))
	mock.ExpectQuery("SELECT p.id,p.name FROM permissions p JOIN role_permissions rp ON rp.permission_id=p.id WHERE rp.role_id=? ORDER BY p.id").
		WithArgs(roleID).WillReturnRows(permissionRows())
}

func errNoRows() error { return sql.ErrNoRows }

func expectNoUserByEmail(mock sqlmock.Sqlmock, email string) {
	mock.ExpectQuery("SELECT u.id,u.email,u.password_hash,u.role_id,u.created_at,u.updated_at FROM users u WHERE LOWER(u.email)=LOWER(?) LIMIT 1").
		WithArgs(email).WillReturnError(sql.ErrNoRows)
}
