package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/repository"
)

// AdminHandler serves the /v1/admin surface: catalog, venue and
// schedule management. Every route behind it requires the ADMIN role.
type AdminHandler struct {
	GenreRepo    *repository.GenreRepo
	MovieRepo    *repository.MovieRepo
	CinemaRepo   *repository.CinemaRepo
	RoomRepo     *repository.RoomRepo
	RowRepo      *repository.RowRepo
	ShowtimeRepo *repository.ShowtimeRepo
	ProductRepo  *repository.ProductRepo
}

// NewAdminHandler constructs an AdminHandler; all dependencies must be
// non-nil.
func NewAdminHandler(genres *repository.GenreRepo, movies *repository.MovieRepo, cinemas *repository.CinemaRepo,
	rooms *repository.RoomRepo, rowRepo *repository.RowRepo, showtimes *repository.ShowtimeRepo,
	products *repository.ProductRepo) *AdminHandler {
	if genres == nil || movies == nil || cinemas == nil || rooms == nil || rowRepo == nil || showtimes == nil || products == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		GenreRepo:    genres,
		MovieRepo:    movies,
		CinemaRepo:   cinemas,
		RoomRepo:     rooms,
		RowRepo:      rowRepo,
		ShowtimeRepo: showtimes,
		ProductRepo:  products,
	}
}

type genreReq struct {
	Name string `json:"name"`
}

// CreateGenre handles POST /v1/admin/genres.
func (h *AdminHandler) CreateGenre(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	g := model.Genre{Name: strings.TrimSpace(req.Name)}
	if err := h.GenreRepo.Create(c.Request().Context(), &g); err != nil {
		if errors.Is(err, repository.ErrGenreExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// UpdateGenre handles PUT /v1/admin/genres/:id.
func (h *AdminHandler) UpdateGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	err = h.GenreRepo.UpdateName(c.Request().Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrGenreExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update genre failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteGenre handles DELETE /v1/admin/genres/:id. Genres still
// referenced by movies conflict.
func (h *AdminHandler) DeleteGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.GenreRepo.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre is referenced by movies"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type movieReq struct {
	GenreID     uint64  `json:"genre_id"`
	Title       string  `json:"title"`
	Synopsis    *string `json:"synopsis"`
	DurationMin uint32  `json:"duration_min"`
	PosterURL   *string `json:"poster_url"`
	IsActive    *bool   `json:"is_active"`
}

func (req *movieReq) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title required")
	}
	if req.GenreID == 0 {
		return errors.New("genre_id required")
	}
	if req.DurationMin == 0 {
		return errors.New("duration_min must be positive")
	}
	return nil
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.GenreRepo.GetByID(ctx, req.GenreID); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown genre"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	m := model.Movie{
		GenreID:     req.GenreID,
		Title:       strings.TrimSpace(req.Title),
		Synopsis:    req.Synopsis,
		DurationMin: req.DurationMin,
		PosterURL:   req.PosterURL,
	}
	if err := h.MovieRepo.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PUT /v1/admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	m, err := h.MovieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	m.GenreID = req.GenreID
	m.Title = strings.TrimSpace(req.Title)
	m.Synopsis = req.Synopsis
	m.DurationMin = req.DurationMin
	m.PosterURL = req.PosterURL
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.MovieRepo.Update(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/admin/movies/:id. Movies with
// scheduled showtimes conflict.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.MovieRepo.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie has scheduled showtimes"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type productReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

// ListAllProducts handles GET /v1/admin/products: the full menu,
// inactive products included.
func (h *AdminHandler) ListAllProducts(c echo.Context) error {
	products, err := h.ProductRepo.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": products})
}

// CreateProduct handles POST /v1/admin/products.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	p := model.Product{Name: strings.TrimSpace(req.Name), Description: req.Description, Price: req.Price}
	if err := h.ProductRepo.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT /v1/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	ctx := c.Request().Context()
	p, err := h.ProductRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.ProductRepo.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update product failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /v1/admin/products/:id. Products that
// were ever ordered are deactivated rather than removed.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.ProductRepo.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete product failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
