package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/repository"
	"github.com/iliyamo/cinema-booking-api/internal/seatmap"
)

// ListMovieShowtimes handles GET /v1/movies/:id/showtimes?cinema_id=&from=.
// Only upcoming SCHEDULED showtimes are returned; from defaults to now.
func (h *PublicHandler) ListMovieShowtimes(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	from := time.Now().UTC()
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be RFC3339"})
		}
		from = t
	}

	ctx := c.Request().Context()
	if _, err := h.MovieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	showtimes, err := h.ShowtimeRepo.ListByMovie(ctx, movieID, cinemaID, from)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": showtimes})
}

// GetShowtime handles GET /v1/showtimes/:id.
func (h *PublicHandler) GetShowtime(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	st, err := h.ShowtimeRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, st)
}

// GetSeatMap handles GET /v1/showtimes/:id/seatmap: the room layout
// joined with live occupancy and priced against the showtime's base
// price. Occupancy is read fresh on every call, so two requests a
// second apart can disagree; checkout re-validates under lock anyway.
func (h *PublicHandler) GetSeatMap(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
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
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime is not open for booking"})
	}

	layout, err := h.RoomRepo.GetLayout(ctx, st.RoomID)
	if err != nil {
		if errors.Is(err, seatmap.ErrMalformedLayout) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room layout is malformed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	occupied, err := h.OrderRepo.OccupiedLabels(ctx, st.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	m := seatmap.Build(layout, st.BasePrice, occupied)
	return c.JSON(http.StatusOK, echo.Map{
		"showtime_id": st.ID,
		"room_id":     st.RoomID,
		"base_price":  st.BasePrice,
		"rows":        m.Rows,
		"seat_count":  m.SeatCount(),
	})
}
