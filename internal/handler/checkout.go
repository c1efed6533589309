package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/queue"
	"github.com/iliyamo/cinema-booking-api/internal/repository"
	"github.com/iliyamo/cinema-booking-api/internal/seatmap"
	"github.com/iliyamo/cinema-booking-api/internal/service"
)

// OrderHandler serves checkout and the customer's order history.
type OrderHandler struct {
	ShowtimeRepo *repository.ShowtimeRepo
	RoomRepo     *repository.RoomRepo
	ProductRepo  *repository.ProductRepo
	OrderRepo    *repository.OrderRepo
}

// NewOrderHandler constructs an OrderHandler; all dependencies must be
// non-nil.
func NewOrderHandler(showtimes *repository.ShowtimeRepo, rooms *repository.RoomRepo,
	products *repository.ProductRepo, orders *repository.OrderRepo) *OrderHandler {
	if showtimes == nil || rooms == nil || products == nil || orders == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{
		ShowtimeRepo: showtimes,
		RoomRepo:     rooms,
		ProductRepo:  products,
		OrderRepo:    orders,
	}
}

type checkoutItemReq struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
}

type checkoutReq struct {
	Seats         []string          `json:"seats"`
	Items         []checkoutItemReq `json:"items"`
	PaymentMethod string            `json:"payment_method"`
}

// Checkout handles POST /v1/showtimes/:id/checkout. Availability is
// re-validated inside a transaction holding the occupancy rows FOR
// UPDATE: a seat taken between seat-map load and checkout fails the
// whole order with 409 rather than double-booking. All prices are
// computed server side; the request carries only labels and quantities.
func (h *OrderHandler) Checkout(c echo.Context) error {
	showtimeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one seat is required"})
	}
	for _, it := range req.Items {
		if it.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be positive"})
		}
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "CARD"
	}

	ctx := c.Request().Context()
	now := time.Now().UTC()

	st, err := h.ShowtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if st.Status != model.ShowtimeScheduled || !st.StartsAt.After(now) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime is not open for booking"})
	}

	layout, err := h.RoomRepo.GetLayout(ctx, st.RoomID)
	if err != nil {
		if errors.Is(err, seatmap.ErrMalformedLayout) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room layout is malformed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Price concession items outside the lock; product prices do not
	// race with seat occupancy.
	productIDs := make([]uint64, 0, len(req.Items))
	for _, it := range req.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	products, err := h.ProductRepo.GetActiveByIDs(ctx, productIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for _, it := range req.Items {
		if _, ok := products[it.ProductID]; !ok {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown or inactive product"})
		}
	}

	tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	defer func() { _ = tx.Rollback() }()

	occupied, err := h.OrderRepo.OccupiedLabelsTx(ctx, tx, st.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	m := seatmap.Build(layout, st.BasePrice, occupied)
	sel := seatmap.NewSelection(m)
	for _, label := range req.Seats {
		seat, ok := m.Seat(label)
		if !ok {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown seat: " + label})
		}
		if seat.Occupied {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat no longer available: " + label})
		}
		sel.Toggle(label) // toggling a duplicate label in the request drops it
	}
	if sel.Count() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one seat is required"})
	}

	total := sel.Total()
	for _, it := range req.Items {
		total += products[it.ProductID].Price * float64(it.Quantity)
	}

	order := model.Order{
		UserID:        userID,
		ShowtimeID:    st.ID,
		Status:        model.OrderConfirmed,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   total,
	}
	if err := h.OrderRepo.CreateTx(ctx, tx, &order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}

	labels := sel.Labels()
	orderSeats := make([]model.OrderSeat, 0, len(labels))
	for _, label := range labels {
		seat, _ := m.Seat(label)
		orderSeats = append(orderSeats, model.OrderSeat{
			OrderID: order.ID,
			SeatID:  seat.SeatID,
			Label:   seat.Label,
			Price:   seat.Price,
		})
	}
	if err := h.OrderRepo.CreateSeatsBulkTx(ctx, tx, orderSeats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order seats failed"})
	}

	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		orderItems = append(orderItems, model.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: products[it.ProductID].Price,
		})
	}
	if err := h.OrderRepo.CreateItemsBulkTx(ctx, tx, orderItems); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order items failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	detail, err := h.OrderRepo.GetByIDForUser(ctx, order.ID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load order failed"})
	}

	// Fire-and-forget: a broker outage must not fail a paid order.
	go func(d repository.OrderDetail) {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ev := queue.OrderConfirmedEvent{
			OrderID:     d.Order.ID,
			UserID:      d.Order.UserID,
			ShowtimeID:  d.Order.ShowtimeID,
			CinemaName:  d.CinemaName,
			RoomName:    d.RoomName,
			MovieTitle:  d.MovieTitle,
			StartsAt:    d.StartsAt.UTC().Format(time.RFC3339),
			SeatLabels:  labels,
			ItemCount:   len(d.Items),
			TotalAmount: d.Order.TotalAmount,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := service.PublishOrderConfirmed(pctx, ev); err != nil {
			log.Printf("checkout: publish order.confirmed failed for order %d: %v", d.Order.ID, err)
		}
	}(*detail)

	return c.JSON(http.StatusCreated, detail)
}

// MyOrders handles GET /v1/my-orders.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.OrderRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

// GetOrder handles GET /v1/orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.OrderRepo.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// CancelOrder handles DELETE /v1/orders/:id. Cancelling releases
// the seats: they simply stop counting toward occupancy. Cancelling an
// already-cancelled order succeeds without effect.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	err = h.OrderRepo.CancelForUser(c.Request().Context(), id, userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "showtime already started"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
