package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/travel-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/travel-booking/internal/middleware" // import middleware for session authentication and caching
)

// Handlers collects every handler the router wires up. The struct keeps
// RegisterRoutes' signature stable as endpoints are added.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Destinations *handler.DestinationHandler
	Bookings     *handler.BookingHandler
	Payments     *handler.PaymentHandler
	Reviews      *handler.ReviewHandler
	Wishlist     *handler.WishlistHandler
	Support      *handler.SupportHandler
}

// RegisterRoutes registers all application routes on the provided Echo
// instance. Unauthenticated operations live under /v1/auth plus the public
// catalogue; protected endpoints live under /v1 behind the JWT middleware.
// The cache middleware wraps only the public browse endpoints.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Authentication endpoints; none of these require a session.
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	// Logout is a stateless acknowledgement; no token blacklist exists, so
	// it does not require the middleware either.
	g.POST("/logout", h.Auth.Logout)

	// Public catalogue browsing. Responses are cached when Redis is up.
	pub := e.Group("/v1")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("/destinations", h.Destinations.List)
	pub.GET("/destinations/:id", h.Destinations.Get)
	pub.GET("/destinations/:id/reviews", h.Destinations.ListReviews)
	pub.GET("/users", h.Users.List)

	// Everything below requires a valid session token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/profile", h.Auth.Profile)

	auth.POST("/destinations", h.Destinations.Create)

	auth.POST("/bookings", h.Bookings.Create)
	auth.GET("/bookings", h.Bookings.List)
	auth.GET("/bookings/:id", h.Bookings.Get)
	auth.DELETE("/bookings/:id", h.Bookings.Cancel)

	auth.POST("/payments", h.Payments.Create)
	auth.GET("/payments", h.Payments.List)

	auth.POST("/reviews", h.Reviews.Create)

	auth.POST("/wishlist", h.Wishlist.Add)
	auth.GET("/wishlist", h.Wishlist.List)
	auth.DELETE("/wishlist/:destination_id", h.Wishlist.Remove)

	auth.POST("/support", h.Support.Create)
	auth.GET("/support", h.Support.List)
}
