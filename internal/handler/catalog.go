package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moviemetrics/movie-metrics/internal/service"
)

// CatalogHandler serves the read-only reference data: genres,
// classifications, roles and permissions.
type CatalogHandler struct {
	Catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

type genreResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type classificationResponse struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Brief string `json:"brief"`
}

type roleResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Permissions string `json:"permissions"`
}

type permissionResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListGenres handles GET /api/genres.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	genres, err := h.Catalog.GetAllGenres(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]genreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, genreResponse{ID: g.ID, Name: g.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// ListClassifications handles GET /api/classifications.
func (h *CatalogHandler) ListClassifications(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	classifications, err := h.Catalog.GetAllClassifications(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]classificationResponse, 0, len(classifications))
	for _, cl := range classifications {
		out = append(out, classificationResponse{ID: cl.ID, Name: cl.Name, Brief: cl.Brief})
	}
	return c.JSON(http.StatusOK, out)
}

// ListRoles handles GET /api/roles.
func (h *CatalogHandler) ListRoles(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	roles, err := h.Catalog.GetAllRoles(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		names := make([]string, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			names = append(names, p.Name)
		}
		out = append(out, roleResponse{ID: r.ID, Name: r.Name, Permissions: strings.Join(names, ", ")})
	}
	return c.JSON(http.StatusOK, out)
}

// ListPermissions handles GET /api/permissions.
func (h *CatalogHandler) ListPermissions(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	permissions, err := h.Catalog.GetAllPermissions(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]permissionResponse, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, permissionResponse{ID: p.ID, Name: p.Name})
	}
	return c.JSON(http.StatusOK, out)
}
