package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moviemetrics/movie-metrics/internal/errs"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
	"github.com/moviemetrics/movie-metrics/internal/utils"
)

// UserInput carries the mutable fields of a user for create and
// update. IsPasswordEncrypted marks the password as an already-hashed
// value that must be stored verbatim (used by administrative tooling).
type UserInput struct {
	Email               string
	Password            string
	IsPasswordEncrypted bool
	RoleID              uint64
}

// UserService implements administrative user CRUD. Validation order:
// natural-key uniqueness first, then referential checks, then the
// write.
type UserService struct {
	Users      *repository.UserRepo
	Roles      *repository.RoleRepo
	BcryptCost int
}

func NewUserService(users *repository.UserRepo, roles *repository.RoleRepo, bcryptCost int) *UserService {
	return &UserService{Users: users, Roles: roles, BcryptCost: bcryptCost}
}

// Create validates email uniqueness and the role reference, then
// persists the user.
func (s *UserService) Create(ctx context.Context, in UserInput) (model.User, error) {
	_, err := s.Users.GetByEmail(ctx, in.Email)
	if err == nil {
		return model.User{}, errs.EmailTaken(in.Email)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, err
	}

	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return model.User{}, err
	}

	hash, err := s.storedPassword(in)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.Users.Create(ctx, in.Email, hash, in.RoleID)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return model.User{}, errs.EmailTaken(in.Email)
		}
		return model.User{}, err
	}
	return s.Users.GetByID(ctx, id)
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id uint64) (model.User, error) {
	user, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, errs.UserNotFoundByID(id)
	}
	return user, err
}

// GetByEmail fetches a user by email, ignoring case.
func (s *UserService) GetByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, errs.UserNotFoundByEmail(email)
	}
	return user, err
}

// GetAll returns every user.
func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.Users.GetAll(ctx)
}

// Update replaces the user's mutable fields. The uniqueness check
// excludes the record being updated, so a user keeping their own
// email does not conflict with themselves.
func (s *UserService) Update(ctx context.Context, id uint64, in UserInput) (model.User, error) {
	exists, err := s.Users.ExistsByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if !exists {
		return model.User{}, errs.UserNotFoundByID(id)
	}

	found, err := s.Users.GetByEmail(ctx, in.Email)
	if err == nil && found.ID != id {
		return model.User{}, errs.EmailTaken(in.Email)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, err
	}

	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return model.User{}, err
	}

	hash, err := s.storedPassword(in)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Users.Update(ctx, id, in.Email, hash, in.RoleID); err != nil {
		if repository.IsDuplicateKey(err) {
			return model.User{}, errs.EmailTaken(in.Email)
		}
		return model.User{}, err
	}
	return s.Users.GetByID(ctx, id)
}

// Delete removes a user and returns the pre-deletion snapshot.
func (s *UserService) Delete(ctx context.Context, id uint64) (model.User, error) {
	user, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, errs.UserNotFoundByID(id)
	}
	if err != nil {
		return model.User{}, err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *UserService) checkRole(ctx context.Context, roleID uint64) error {
	exists, err := s.Roles.ExistsByID(ctx, roleID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.RoleNotFoundByID(roleID)
	}
	return nil
}

func (s *UserService) storedPassword(in UserInput) (string, error) {
	if in.IsPasswordEncrypted {
		return in.Password, nil
	}
	return utils.HashPassword(in.Password, s.BcryptCost)
}
