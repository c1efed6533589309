package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/repository"
)

type showtimeReq struct {
	MovieID   uint64    `json:"movie_id"`
	RoomID    uint64    `json:"room_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	BasePrice float64   `json:"base_price"`
}

func (req *showtimeReq) validate() error {
	if req.MovieID == 0 || req.RoomID == 0 {
		return errors.New("movie_id and room_id required")
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() || !req.EndsAt.After(req.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	if req.BasePrice < 0 {
		return errors.New("base_price must not be negative")
	}
	return nil
}

// CreateShowtime handles POST /v1/admin/showtimes. Scheduling verifies
// the movie and room exist and that the room is free for the slot;
// overlap with another scheduled showtime conflicts.
func (h *AdminHandler) CreateShowtime(c echo.Context) error {
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.MovieRepo.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown movie"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rm, err := h.RoomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !rm.IsActive {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "room is inactive"})
	}

	st := model.Showtime{
		MovieID:   req.MovieID,
		RoomID:    req.RoomID,
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt.UTC(),
		BasePrice: req.BasePrice,
	}
	if err := h.ShowtimeRepo.Create(ctx, &st); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room already booked for this slot"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create showtime failed"})
	}
	return c.JSON(http.StatusCreated, st)
}

// UpdateShowtime handles PUT /v1/admin/showtimes/:id. The base price of
// a showtime may change up to start time; seat maps rendered afterwards
// pick up the new derived prices, while existing orders keep the prices
// recorded at their checkout.
func (h *AdminHandler) UpdateShowtime(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	st, err := h.ShowtimeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if st.Status != model.ShowtimeScheduled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime is not editable"})
	}
	st.MovieID = req.MovieID
	st.RoomID = req.RoomID
	st.StartsAt = req.StartsAt.UTC()
	st.EndsAt = req.EndsAt.UTC()
	st.BasePrice = req.BasePrice
	if err := h.ShowtimeRepo.Update(ctx, st); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update showtime failed"})
	}
	return c.JSON(http.StatusOK, st)
}

// CancelShowtime handles POST /v1/admin/showtimes/:id/cancel. A
// showtime with live orders conflicts; those orders must be cancelled
// first so no customer silently loses a booked seat.
func (h *AdminHandler) CancelShowtime(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.ShowtimeRepo.Cancel(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrShowtimeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "showtime has live orders"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel showtime failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
