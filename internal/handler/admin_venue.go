package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/repository"
)

type cinemaReq struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// CreateCinema handles POST /v1/admin/cinemas.
func (h *AdminHandler) CreateCinema(c echo.Context) error {
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.City) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city required"})
	}
	cn := model.Cinema{Name: strings.TrimSpace(req.Name), City: strings.TrimSpace(req.City), Address: strings.TrimSpace(req.Address)}
	if err := h.CinemaRepo.Create(c.Request().Context(), &cn); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create cinema failed"})
	}
	return c.JSON(http.StatusCreated, cn)
}

// UpdateCinema handles PUT /v1/admin/cinemas/:id.
func (h *AdminHandler) UpdateCinema(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.City) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city required"})
	}
	ctx := c.Request().Context()
	cn, err := h.CinemaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	cn.Name = strings.TrimSpace(req.Name)
	cn.City = strings.TrimSpace(req.City)
	cn.Address = strings.TrimSpace(req.Address)
	if err := h.CinemaRepo.Update(ctx, cn); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cinema failed"})
	}
	return c.JSON(http.StatusOK, cn)
}

// DeleteCinema handles DELETE /v1/admin/cinemas/:id. Cinemas that still
// have rooms conflict.
func (h *AdminHandler) DeleteCinema(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.CinemaRepo.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCinemaNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cinema still has rooms"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete cinema failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type roomReq struct {
	CinemaID uint64 `json:"cinema_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive *bool  `json:"is_active"`
}

func validRoomType(t string) bool {
	switch t {
	case model.RoomSmall, model.RoomMedium, model.RoomLarge, model.RoomIMAX:
		return true
	}
	return false
}

// CreateRoom handles POST /v1/admin/rooms.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CinemaID == 0 || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema_id and name required"})
	}
	if !validRoomType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type"})
	}
	ctx := c.Request().Context()
	if _, err := h.CinemaRepo.GetByID(ctx, req.CinemaID); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown cinema"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rm := model.Room{CinemaID: req.CinemaID, Name: strings.TrimSpace(req.Name), Type: req.Type}
	if err := h.RoomRepo.Create(ctx, &rm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, rm)
}

// UpdateRoom handles PUT /v1/admin/rooms/:id.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CinemaID == 0 || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema_id and name required"})
	}
	if !validRoomType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type"})
	}
	ctx := c.Request().Context()
	rm, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rm.CinemaID = req.CinemaID
	rm.Name = strings.TrimSpace(req.Name)
	rm.Type = req.Type
	if req.IsActive != nil {
		rm.IsActive = *req.IsActive
	}
	if err := h.RoomRepo.Update(ctx, rm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, rm)
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id. Rooms with scheduled
// showtimes conflict; rows and seats cascade.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.RoomRepo.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has scheduled showtimes"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRoomRows handles GET /v1/admin/rooms/:id/rows: every row of the
// room in display order, inactive ones included.
func (h *AdminHandler) ListRoomRows(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.RoomRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rows, err := h.RowRepo.ListByRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

type rowReq struct {
	Letter     string  `json:"letter"`
	Seq        uint32  `json:"seq"`
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
	SeatCount  uint32  `json:"seat_count"` // create only: generate 1..N seats
	SeatType   string  `json:"seat_type"`  // create only: type for generated seats
	IsActive   *bool   `json:"is_active"`
}

func validRowType(t string) bool {
	switch t {
	case model.RowNormal, model.RowVIP, model.RowPremium:
		return true
	}
	return false
}

func validSeatType(t string) bool {
	switch t {
	case model.SeatNormal, model.SeatVIP, model.SeatAccessible, model.SeatCouple:
		return true
	}
	return false
}

// CreateRow handles POST /v1/admin/rooms/:id/rows. When seat_count is
// set, seats numbered 1..seat_count are generated in the same request.
// The multiplier is stored as given; pricing tolerates any value.
func (h *AdminHandler) CreateRow(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Letter = strings.ToUpper(strings.TrimSpace(req.Letter))
	if req.Letter == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "letter required"})
	}
	if !validRowType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row type"})
	}
	if req.SeatCount > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_count too large"})
	}
	seatType := req.SeatType
	if seatType == "" {
		seatType = model.SeatNormal
	}
	if !validSeatType(seatType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat type"})
	}

	ctx := c.Request().Context()
	if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	row := model.Row{RoomID: roomID, Letter: req.Letter, Seq: req.Seq, Type: req.Type, Multiplier: req.Multiplier}
	if err := h.RowRepo.Create(ctx, &row); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "row letter already used in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create row failed"})
	}

	if req.SeatCount > 0 {
		seats := make([]model.Seat, 0, req.SeatCount)
		for n := uint32(1); n <= req.SeatCount; n++ {
			seats = append(seats, model.Seat{RowID: row.ID, SeatNumber: n, Type: seatType})
		}
		if err := h.RowRepo.CreateSeatsBulk(ctx, seats); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seats failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"row": row, "seats_created": req.SeatCount})
}

// UpdateRow handles PUT /v1/admin/rows/:id.
func (h *AdminHandler) UpdateRow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Letter = strings.ToUpper(strings.TrimSpace(req.Letter))
	if req.Letter == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "letter required"})
	}
	if !validRowType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row type"})
	}
	ctx := c.Request().Context()
	row, err := h.RowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "row not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	row.Letter = req.Letter
	row.Seq = req.Seq
	row.Type = req.Type
	row.Multiplier = req.Multiplier
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	if err := h.RowRepo.Update(ctx, row); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "row letter already used in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update row failed"})
	}
	return c.JSON(http.StatusOK, row)
}

// DeleteRow handles DELETE /v1/admin/rows/:id. Rows whose seats were
// ever sold conflict.
func (h *AdminHandler) DeleteRow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.RowRepo.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "row not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "row has sold seats"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete row failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type seatReq struct {
	SeatNumber uint32 `json:"seat_number"`
	Type       string `json:"type"`
	IsActive   *bool  `json:"is_active"`
}

// UpdateSeat handles PUT /v1/admin/seats/:id.
func (h *AdminHandler) UpdateSeat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req seatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_number must be positive"})
	}
	if !validSeatType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat type"})
	}
	ctx := c.Request().Context()
	s, err := h.RowRepo.GetSeatByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	s.SeatNumber = req.SeatNumber
	s.Type = req.Type
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.RowRepo.UpdateSeat(ctx, s); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat number already used in this row"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSeat handles DELETE /v1/admin/seats/:id. Seats that were ever
// sold conflict; deactivate them instead.
func (h *AdminHandler) DeleteSeat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.RowRepo.DeleteSeat(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat has been sold"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete seat failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
