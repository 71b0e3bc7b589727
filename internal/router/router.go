package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/hostel-room-booking/internal/handler"    // import the handlers that forward intents to the engine
    "github.com/iliyamo/hostel-room-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
    "github.com/iliyamo/hostel-room-booking/internal/model"      // role names for RequireRole
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check used by monitoring, the public
// room browse endpoint and login.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, p *handler.PublicHandler, jwtSecret string) {
    // Liveness probe for load balancers and monitoring systems.
    e.GET("/healthz", handler.Health)

    // Guests may browse the room layout and remaining capacity before
    // logging in.
    e.GET("/v1/rooms", p.GetRooms)

    // Login exchanges one of the two fixed credential pairs for a session
    // token.  There is no register/refresh/logout: dropping the token ends
    // the session.
    e.POST("/v1/auth/login", a.Login)

    // /v1/me restores the active role after a reload.  Any authenticated
    // role may call it.
    me := e.Group("/v1")
    me.Use(middleware.JWTAuth(jwtSecret))
    me.Use(middleware.RequireRole(model.RoleStudent, model.RoleAdmin))
    me.GET("/me", a.Me)
}

// RegisterStudent registers the student intents under /v1.  Every route
// requires a valid session token with the STUDENT role; handlers forward the
// intent to the allocation engine and translate its sentinel errors.
func RegisterStudent(e *echo.Echo, s *handler.StudentHandler, jwtSecret string) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(model.RoleStudent))

    // Booking flow: submit, cancel, list own.
    g.POST("/bookings", s.SubmitBooking)
    g.DELETE("/bookings/:id", s.CancelBooking)
    g.GET("/bookings", s.ListBookings)

    // Room change flow: submit, list own.
    g.POST("/changes", s.SubmitChange)
    g.GET("/changes", s.ListChanges)

    // Maintenance flow: file tickets, list own.
    g.POST("/tickets", s.SubmitTicket)
    g.GET("/tickets", s.ListTickets)
}

// RegisterAdmin registers the administrator surface under /v1/admin: the
// decision endpoints, ticket resolution, the occupancy overview and full
// ledger listings.  Every route requires the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group("/v1/admin")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(model.RoleAdmin))

    g.POST("/bookings/:id/decision", a.DecideBooking)
    g.POST("/changes/:id/decision", a.DecideChange)
    g.POST("/tickets/:id/resolve", a.ResolveTicket)

    g.GET("/rooms", a.ListRooms)
    g.GET("/bookings", a.ListBookings)
    g.GET("/changes", a.ListChanges)
    g.GET("/tickets", a.ListTickets)
}
