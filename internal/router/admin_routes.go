package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/handler"
	"github.com/iliyamo/cinema-booking-api/internal/middleware"
	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// RegisterAdmin registers catalog, venue and schedule management under
// /v1/admin. All routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.POST("/genres", h.CreateGenre)
	g.PUT("/genres/:id", h.UpdateGenre)
	g.DELETE("/genres/:id", h.DeleteGenre)

	g.POST("/movies", h.CreateMovie)
	g.PUT("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)

	g.POST("/cinemas", h.CreateCinema)
	g.PUT("/cinemas/:id", h.UpdateCinema)
	g.DELETE("/cinemas/:id", h.DeleteCinema)

	g.POST("/rooms", h.CreateRoom)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.GET("/rooms/:id/rows", h.ListRoomRows)
	g.POST("/rooms/:id/rows", h.CreateRow)

	g.PUT("/rows/:id", h.UpdateRow)
	g.DELETE("/rows/:id", h.DeleteRow)
	g.PUT("/seats/:id", h.UpdateSeat)
	g.DELETE("/seats/:id", h.DeleteSeat)

	g.POST("/showtimes", h.CreateShowtime)
	g.PUT("/showtimes/:id", h.UpdateShowtime)
	g.POST("/showtimes/:id/cancel", h.CancelShowtime)

	g.GET("/products", h.ListAllProducts)
	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
}
