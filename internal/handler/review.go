package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemetrics/movie-metrics/internal/middleware"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/queue"
	"github.com/moviemetrics/movie-metrics/internal/service"
)

// ReviewHandler serves review CRUD plus the ownership-scoped variants
// that let users manage their own reviews without the global review
// permissions.
type ReviewHandler struct {
	Reviews *service.ReviewService
	Movies  *service.MovieService
}

func NewReviewHandler(reviews *service.ReviewService, movies *service.MovieService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Movies: movies}
}

// Create handles POST /api/reviews/of/:movieId. The author is always
// the authenticated caller. A broker event is published after the
// write; publishing is best-effort and never fails the request.
func (h *ReviewHandler) Create(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return respondError(c, err)
	}
	id, ok := middleware.CallerIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.Reviews.Create(ctx, id.UserID, req.toInput(movieID))
	if err != nil {
		return respondError(c, err)
	}

	go h.publishCreated(review.ID, review.MovieID, review.Score, id.UserID, id.Email)

	return c.JSON(http.StatusCreated, newReviewResponse(review))
}

func (h *ReviewHandler) publishCreated(reviewID, movieID uint64, score int16, authorID uint64, authorEmail string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	title := ""
	if movie, err := h.Movies.Get(ctx, movieID); err == nil {
		title = movie.Title
	}
	_ = queue.PublishReviewPublished(ctx, queue.ReviewPublishedEvent{
		ReviewID:    reviewID,
		MovieID:     movieID,
		MovieTitle:  title,
		AuthorID:    authorID,
		AuthorEmail: authorEmail,
		Score:       score,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Get handles GET /api/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.Reviews.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// List handles GET /api/reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := h.Reviews.GetAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviewList(reviews))
}

// ListOfMovie handles GET /api/reviews/of/:movieId.
func (h *ReviewHandler) ListOfMovie(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := h.Reviews.GetAllOfMovie(ctx, movieID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviewList(reviews))
}

// ListOfUser handles GET /api/reviews/from/:userId.
func (h *ReviewHandler) ListOfUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := h.Reviews.GetAllOfUser(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviewList(reviews))
}

// ListOwn handles GET /api/reviews/own: the caller's own reviews.
func (h *ReviewHandler) ListOwn(c echo.Context) error {
	id, ok := middleware.CallerIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := h.Reviews.GetAllOfUser(ctx, id.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviewList(reviews))
}

// Update handles PATCH /api/reviews/:id: moderation, any review.
func (h *ReviewHandler) Update(c echo.Context) error {
	return h.update(c, false)
}

// UpdateOwn handles PATCH /api/reviews/own/:id: the caller must be
// the author.
func (h *ReviewHandler) UpdateOwn(c echo.Context) error {
	return h.update(c, true)
}

func (h *ReviewHandler) update(c echo.Context, own bool) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if own {
		caller, ok := middleware.CallerIdentity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
		}
		updated, err := h.Reviews.UpdateOwn(ctx, caller.UserID, id, req.toInput(0))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, newReviewResponse(updated))
	}

	updated, err := h.Reviews.Update(ctx, id, req.toInput(0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(updated))
}

// Delete handles DELETE /api/reviews/:id and echoes the deleted
// review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.Reviews.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// DeleteOwn handles DELETE /api/reviews/own/:id.
func (h *ReviewHandler) DeleteOwn(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.Reviews.DeleteOwn(ctx, caller.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

func reviewList(reviews []model.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, newReviewResponse(r))
	}
	return out
}
