package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemetrics/movie-metrics/internal/service"
)

// MovieHandler serves catalog CRUD for movies.
type MovieHandler struct {
	Movies *service.MovieService
}

func NewMovieHandler(movies *service.MovieService) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

// Create handles POST /api/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	movie, err := h.Movies.Create(ctx, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newMovieResponse(movie))
}

// Get handles GET /api/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	movie, err := h.Movies.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMovieResponse(movie))
}

// GetByTitle handles GET /api/movies/title/:title.
func (h *MovieHandler) GetByTitle(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	movie, err := h.Movies.GetByTitle(ctx, c.Param("title"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMovieResponse(movie))
}

// List handles GET /api/movies.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	movies, err := h.Movies.GetAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, newMovieResponse(m))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/movies/:id. The genre set is replaced
// wholesale with the one from the request.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	movie, err := h.Movies.Update(ctx, id, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMovieResponse(movie))
}

// Delete handles DELETE /api/movies/:id and echoes the deleted movie.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	movie, err := h.Movies.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMovieResponse(movie))
}
