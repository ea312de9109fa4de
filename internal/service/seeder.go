package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/moviemetrics/movie-metrics/internal/config"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
	"github.com/moviemetrics/movie-metrics/internal/utils"
)

// Seeder populates the permission, role, genre and classification
// catalogs and guarantees a root administrator account. Every step is
// find-or-create by name, so running it against an already seeded
// store changes nothing. It runs once per process, after migrations
// and before any request is served.
type Seeder struct {
	Cfg             config.Config
	Permissions     *repository.PermissionRepo
	Roles           *repository.RoleRepo
	Genres          *repository.GenreRepo
	Classifications *repository.ClassificationRepo
	Users           *repository.UserRepo
}

func NewSeeder(cfg config.Config, permissions *repository.PermissionRepo, roles *repository.RoleRepo, genres *repository.GenreRepo, classifications *repository.ClassificationRepo, users *repository.UserRepo) *Seeder {
	return &Seeder{Cfg: cfg, Permissions: permissions, Roles: roles, Genres: genres, Classifications: classifications, Users: users}
}

// Run seeds all catalogs and the root account. Any error is fatal for
// startup: the process must not serve requests from a half-seeded
// store.
func (s *Seeder) Run(ctx context.Context) error {
	permsByName := make(map[string]model.Permission, len(model.AllPermissions))
	for i, name := range model.AllPermissions {
		p, err := s.permissionIfNotFound(ctx, uint64(i+1), name)
		if err != nil {
			return fmt.Errorf("seed permission %s: %w", name, err)
		}
		permsByName[name] = p
	}

	for i, bundle := range model.RoleBundles {
		ids := make([]uint64, 0, len(bundle.Permissions))
		for _, name := range bundle.Permissions {
			ids = append(ids, permsByName[name].ID)
		}
		if err := s.roleIfNotFound(ctx, uint64(i+1), bundle.Name, ids); err != nil {
			return fmt.Errorf("seed role %s: %w", bundle.Name, err)
		}
	}

	for i, name := range model.AllGenres {
		if err := s.genreIfNotFound(ctx, uint64(i+1), name); err != nil {
			return fmt.Errorf("seed genre %s: %w", name, err)
		}
	}

	for i, cls := range model.AllClassifications {
		if err := s.classificationIfNotFound(ctx, uint64(i+1), cls.Name, cls.Brief); err != nil {
			return fmt.Errorf("seed classification %s: %w", cls.Name, err)
		}
	}

	return s.rootAccount(ctx)
}

// rootAccount binds the configured root email to the ADMIN role. A
// missing ADMIN role at this point means the catalog pass did not
// complete, which must abort startup.
func (s *Seeder) rootAccount(ctx context.Context) error {
	adminRole, err := s.Roles.FindByName(ctx, model.RoleAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("seed root account: role %s not found", model.RoleAdmin)
	}
	if err != nil {
		return fmt.Errorf("seed root account: %w", err)
	}

	_, err = s.Users.GetByEmail(ctx, s.Cfg.RootEmail)
	if err == nil {
		return nil // already present
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("seed root account: %w", err)
	}

	hash, err := utils.HashPassword(s.Cfg.RootPassword, s.Cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("seed root account: %w", err)
	}
	if _, err := s.Users.Create(ctx, s.Cfg.RootEmail, hash, adminRole.ID); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil
		}
		return fmt.Errorf("seed root account: %w", err)
	}
	log.Printf("seeded root administrator %s", s.Cfg.RootEmail)
	return nil
}

func (s *Seeder) permissionIfNotFound(ctx context.Context, id uint64, name string) (model.Permission, error) {
	p, err := s.Permissions.FindByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Permission{}, err
	}
	if err := s.Permissions.Create(ctx, id, name); err != nil {
		return model.Permission{}, err
	}
	return model.Permission{ID: id, Name: name}, nil
}

func (s *Seeder) roleIfNotFound(ctx context.Context, id uint64, name string, permissionIDs []uint64) error {
	_, err := s.Roles.FindByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.Roles.Create(ctx, id, name, permissionIDs)
}

func (s *Seeder) genreIfNotFound(ctx context.Context, id uint64, name string) error {
	_, err := s.Genres.FindByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.Genres.Create(ctx, id, name)
}

func (s *Seeder) classificationIfNotFound(ctx context.Context, id uint64, name, brief string) error {
	_, err := s.Classifications.FindByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.Classifications.Create(ctx, id, name, brief)
}
