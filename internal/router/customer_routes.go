package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/handler"
	"github.com/iliyamo/cinema-booking-api/internal/middleware"
	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// RegisterCustomer registers the checkout and order-history endpoints.
// All routes require a valid JWT with the CUSTOMER role.
func RegisterCustomer(e *echo.Echo, h *handler.OrderHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/showtimes/:id/checkout", h.Checkout)
	g.GET("/my-orders", h.MyOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.DELETE("/orders/:id", h.CancelOrder)
}
