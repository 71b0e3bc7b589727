package handler

import (
    "context"  // detached contexts for fire-and-forget publishing
    "net/http" // HTTP status codes
    "strings"  // action normalization
    "time"     // publish timeout and event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hostel-room-booking/internal/engine"                  // allocation engine
    "github.com/iliyamo/hostel-room-booking/internal/model"                   // room snapshots for the occupancy view
    "github.com/iliyamo/hostel-room-booking/internal/queue"                   // decision event payloads
    queue_publisher "github.com/iliyamo/hostel-room-booking/internal/service" // broker publishing
)

// AdminHandler exposes the administrator side of the workflow: deciding
// booking and room-change requests, resolving maintenance tickets and
// reading the full ledgers plus the occupancy overview.  Role enforcement
// happens in middleware; every decision is delegated to the engine and then
// announced on the message broker without blocking the response.
type AdminHandler struct {
    Engine *engine.Engine
}

// NewAdminHandler constructs an AdminHandler and panics when the engine is
// missing.
func NewAdminHandler(e *engine.Engine) *AdminHandler {
    if e == nil {
        panic("nil engine passed to NewAdminHandler")
    }
    return &AdminHandler{Engine: e}
}

type decisionReq struct {
    Action string `json:"action"` // approve | reject
}

// parseDecision validates the decision body shared by the booking and change
// endpoints.
func parseDecision(c echo.Context) (bool, error) {
    var req decisionReq
    if err := c.Bind(&req); err != nil {
        return false, err
    }
    switch strings.ToLower(strings.TrimSpace(req.Action)) {
    case "approve":
        return true, nil
    case "reject":
        return false, nil
    default:
        return false, echo.NewHTTPError(http.StatusBadRequest, "action must be approve or reject")
    }
}

// publishDecision announces a settled decision on the broker.  Publishing is
// fire-and-forget: the decision is already durable by the time this runs,
// and a dead broker must never fail the request.
func publishDecision(ev queue.DecisionEvent) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishDecision(ctx, ev)
    }()
}

// DecideBooking handles POST /v1/admin/bookings/:id/decision.  Deciding a
// non-pending request returns the unchanged record with 200, so repeated
// submissions are harmless.
func (h *AdminHandler) DecideBooking(c echo.Context) error {
    id, err := pathID(c)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    approve, err := parseDecision(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    booking, err := h.Engine.DecideBooking(c.Request().Context(), id, approve)
    if err != nil {
        return engineError(c, err)
    }
    publishDecision(queue.DecisionEvent{
        Kind:      queue.KindBookingDecided,
        RequestID: booking.ID,
        StudentID: booking.StudentID,
        RoomID:    booking.RoomID,
        Status:    booking.Status,
        DecidedAt: time.Now().UTC().Format(time.RFC3339),
    })
    return c.JSON(http.StatusOK, booking)
}

// DecideChange handles POST /v1/admin/changes/:id/decision.
func (h *AdminHandler) DecideChange(c echo.Context) error {
    id, err := pathID(c)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid change id"})
    }
    approve, err := parseDecision(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    change, err := h.Engine.DecideChange(c.Request().Context(), id, approve)
    if err != nil {
        return engineError(c, err)
    }
    publishDecision(queue.DecisionEvent{
        Kind:      queue.KindChangeDecided,
        RequestID: change.ID,
        StudentID: change.StudentID,
        RoomID:    change.ToRoomID,
        Status:    change.Status,
        DecidedAt: time.Now().UTC().Format(time.RFC3339),
    })
    return c.JSON(http.StatusOK, change)
}

// ResolveTicket handles POST /v1/admin/tickets/:id/resolve.  Resolving twice
// is a no-op.
func (h *AdminHandler) ResolveTicket(c echo.Context) error {
    id, err := pathID(c)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
    }
    ticket, err := h.Engine.ResolveTicket(c.Request().Context(), id)
    if err != nil {
        return engineError(c, err)
    }
    publishDecision(queue.DecisionEvent{
        Kind:      queue.KindTicketResolved,
        RequestID: ticket.ID,
        StudentID: ticket.StudentID,
        RoomID:    ticket.RoomID,
        Status:    ticket.Status,
        DecidedAt: time.Now().UTC().Format(time.RFC3339),
    })
    return c.JSON(http.StatusOK, ticket)
}

// roomOccupancy is the admin occupancy overview row.
type roomOccupancy struct {
    model.Room
    Remaining int `json:"remaining"`
}

// ListRooms handles GET /v1/admin/rooms and returns every room with its
// remaining capacity.
func (h *AdminHandler) ListRooms(c echo.Context) error {
    rooms := h.Engine.Rooms()
    out := make([]roomOccupancy, len(rooms))
    for i, r := range rooms {
        out[i] = roomOccupancy{Room: r, Remaining: r.CapacityRemaining()}
    }
    return c.JSON(http.StatusOK, out)
}

// ListBookings handles GET /v1/admin/bookings and returns the whole ledger.
func (h *AdminHandler) ListBookings(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Engine.Bookings(""))
}

// ListChanges handles GET /v1/admin/changes.
func (h *AdminHandler) ListChanges(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Engine.Changes(""))
}

// ListTickets handles GET /v1/admin/tickets.
func (h *AdminHandler) ListTickets(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Engine.Tickets(""))
}
