// Package service holds the application logic between the HTTP
// handlers and the repositories: conflict and existence validation,
// the catalog seeding routine and token issuance.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moviemetrics/movie-metrics/internal/config"
	"github.com/moviemetrics/movie-metrics/internal/errs"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
	"github.com/moviemetrics/movie-metrics/internal/utils"
)

// AuthService implements the registration and login flows.
type AuthService struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Roles *repository.RoleRepo
}

func NewAuthService(cfg config.Config, users *repository.UserRepo, roles *repository.RoleRepo) *AuthService {
	return &AuthService{Cfg: cfg, Users: users, Roles: roles}
}

// Register creates an account with the default USER role and returns
// a signed access token for it. A taken email (any case variant) is a
// conflict; a missing USER role means seeding never completed and is
// reported as an internal error.
func (s *AuthService) Register(ctx context.Context, email, password string) (utils.AccessToken, model.User, error) {
	_, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return utils.AccessToken{}, model.User{}, errs.EmailTaken(email)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return utils.AccessToken{}, model.User{}, err
	}

	userRole, err := s.Roles.FindByName(ctx, model.RoleUser)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.AccessToken{}, model.User{}, &errs.InternalError{Message: "Role " + model.RoleUser + " not found"}
	}
	if err != nil {
		return utils.AccessToken{}, model.User{}, err
	}

	hash, err := utils.HashPassword(password, s.Cfg.BcryptCost)
	if err != nil {
		return utils.AccessToken{}, model.User{}, err
	}
	id, err := s.Users.Create(ctx, email, hash, userRole.ID)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return utils.AccessToken{}, model.User{}, errs.EmailTaken(email)
		}
		return utils.AccessToken{}, model.User{}, err
	}

	user := model.User{ID: id, Email: email, RoleID: userRole.ID, Role: &userRole}
	token, err := utils.NewAccessToken(s.Cfg.JWTSecret, user.ID, user.Email, user.Authorities(), s.Cfg.TokenTTLHours)
	if err != nil {
		return utils.AccessToken{}, model.User{}, err
	}
	return token, user, nil
}

// Authenticate verifies credentials and issues an access token. An
// unknown email is a NotFound; a wrong password yields no token and a
// human-readable message instead of an error, preserving the
// soft-failure login contract.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*utils.AccessToken, string, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", errs.UserNotFoundByEmail(email)
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, "Incorrect password", nil
	}

	token, err := utils.NewAccessToken(s.Cfg.JWTSecret, user.ID, user.Email, user.Authorities(), s.Cfg.TokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return &token, "", nil
}
