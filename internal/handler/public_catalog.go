package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/repository"
)

// PublicHandler aggregates the repositories needed for unauthenticated
// browsing: the movie catalog, venues and the concession menu.
type PublicHandler struct {
	GenreRepo    *repository.GenreRepo
	MovieRepo    *repository.MovieRepo
	CinemaRepo   *repository.CinemaRepo
	RoomRepo     *repository.RoomRepo
	ShowtimeRepo *repository.ShowtimeRepo
	ProductRepo  *repository.ProductRepo
	OrderRepo    *repository.OrderRepo
}

// NewPublicHandler constructs a PublicHandler; all dependencies must be
// non-nil.
func NewPublicHandler(genres *repository.GenreRepo, movies *repository.MovieRepo, cinemas *repository.CinemaRepo,
	rooms *repository.RoomRepo, showtimes *repository.ShowtimeRepo, products *repository.ProductRepo,
	orders *repository.OrderRepo) *PublicHandler {
	if genres == nil || movies == nil || cinemas == nil || rooms == nil || showtimes == nil || products == nil || orders == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{
		GenreRepo:    genres,
		MovieRepo:    movies,
		CinemaRepo:   cinemas,
		RoomRepo:     rooms,
		ShowtimeRepo: showtimes,
		ProductRepo:  products,
		OrderRepo:    orders,
	}
}

// ListGenres handles GET /v1/genres.
func (h *PublicHandler) ListGenres(c echo.Context) error {
	genres, err := h.GenreRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": genres})
}

// ListMovies handles GET /v1/movies?genre_id=&q=. Only active movies
// are returned.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	genreID, err := queryID(c, "genre_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	movies, err := h.MovieRepo.List(c.Request().Context(), genreID, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetMovie handles GET /v1/movies/:id.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.MovieRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// ListCinemas handles GET /v1/cinemas?city=.
func (h *PublicHandler) ListCinemas(c echo.Context) error {
	cinemas, err := h.CinemaRepo.List(c.Request().Context(), c.QueryParam("city"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cinemas})
}

// ListCinemaRooms handles GET /v1/cinemas/:id/rooms.
func (h *PublicHandler) ListCinemaRooms(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.CinemaRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.RoomRepo.ListByCinema(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// ListProducts handles GET /v1/products: the active concession menu.
func (h *PublicHandler) ListProducts(c echo.Context) error {
	products, err := h.ProductRepo.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": products})
}
