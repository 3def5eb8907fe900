package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/handler"
	"github.com/frocha1012/travel-reservation/internal/middleware"
	"github.com/frocha1012/travel-reservation/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while the protected
// identity endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body, so it needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(repository.RoleAdmin, repository.RoleCustomer))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// flight and hotel listings with derived availability, and the flight
// recommendation.  Guests can inspect inventory before registering.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/flights", p.ListFlights)
	// The static recommendation route must be registered before the
	// :id route so "recommendation" is not parsed as a flight id.
	e.GET("/v1/flights/recommendation", p.RecommendFlight)
	e.GET("/v1/flights/:id", p.GetFlight)
	e.GET("/v1/hotels", p.ListHotels)
	e.GET("/v1/hotels/:id", p.GetHotel)
}

// RegisterCustomer registers reservation endpoints for authenticated
// customers.  Administrators may book too, matching the original
// system where any account could hold reservations.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleAdmin, repository.RoleCustomer))
	g.POST("", h.CreateReservation)
	g.GET("", h.MyReservations)
	g.POST("/:id/cancel", h.RequestCancellation)
}

// RegisterAdmin registers inventory management, reservation decisions
// and user management under /v1/admin, restricted to the ADMIN role.
func RegisterAdmin(e *echo.Echo, inv *handler.AdminInventoryHandler, res *handler.AdminReservationHandler, usr *handler.AdminUserHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleAdmin))

	g.POST("/flights", inv.CreateFlight)
	g.PUT("/flights/:id", inv.UpdateFlight)
	g.DELETE("/flights/:id", inv.DeleteFlight)
	g.POST("/hotels", inv.CreateHotel)
	g.PUT("/hotels/:id", inv.UpdateHotel)
	g.DELETE("/hotels/:id", inv.DeleteHotel)

	g.GET("/reservations", res.ListReservations)
	g.GET("/reservations/report", res.Report)
	g.GET("/notifications", res.Notifications)
	g.POST("/reservations/:id/approve", res.Approve)
	g.POST("/reservations/:id/reject", res.Reject)
	g.POST("/reservations/:id/cancellation/confirm", res.ConfirmCancellation)
	g.POST("/reservations/:id/cancellation/deny", res.DenyCancellation)

	g.GET("/users", usr.ListUsers)
	g.DELETE("/users/:id", usr.DeleteUser)
}
