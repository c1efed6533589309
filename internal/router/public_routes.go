package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-api/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints: the
// movie catalog, venues, showtimes with their derived seat maps, and
// the concession menu. Guests can explore everything up to the point of
// checkout, which requires an account.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/genres", p.ListGenres)
	g.GET("/movies", p.ListMovies)
	g.GET("/movies/:id", p.GetMovie)
	g.GET("/movies/:id/showtimes", p.ListMovieShowtimes)
	g.GET("/cinemas", p.ListCinemas)
	g.GET("/cinemas/:id/rooms", p.ListCinemaRooms)
	g.GET("/showtimes/:id", p.GetShowtime)
	g.GET("/showtimes/:id/seatmap", p.GetSeatMap)
	g.GET("/products", p.ListProducts)
}
