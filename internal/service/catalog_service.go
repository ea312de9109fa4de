package service

import (
	"context"

	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/repository"
)

// CatalogService exposes the read-only reference data: genres,
// classifications, roles and permissions. All four sets are populated
// by the seeding routine and never mutated through the API.
type CatalogService struct {
	Genres          *repository.GenreRepo
	Classifications *repository.ClassificationRepo
	Roles           *repository.RoleRepo
	Permissions     *repository.PermissionRepo
}

func NewCatalogService(genres *repository.GenreRepo, classifications *repository.ClassificationRepo, roles *repository.RoleRepo, permissions *repository.PermissionRepo) *CatalogService {
	return &CatalogService{Genres: genres, Classifications: classifications, Roles: roles, Permissions: permissions}
}

func (s *CatalogService) GetAllGenres(ctx context.Context) ([]model.Genre, error) {
	return s.Genres.GetAll(ctx)
}

func (s *CatalogService) GetAllClassifications(ctx context.Context) ([]model.MovieClassification, error) {
	return s.Classifications.GetAll(ctx)
}

func (s *CatalogService) GetAllRoles(ctx context.Context) ([]model.Role, error) {
	return s.Roles.GetAll(ctx)
}

func (s *CatalogService) GetAllPermissions(ctx context.Context) ([]model.Permission, error) {
	return s.Permissions.GetAll(ctx)
}
