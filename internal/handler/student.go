package handler

import (
    "net/http" // HTTP status codes
    "strings"  // input normalization

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hostel-room-booking/internal/engine" // allocation engine
    "github.com/iliyamo/hostel-room-booking/internal/model"  // ticket priorities
)

// StudentHandler exposes the intents a student can submit: booking a room,
// cancelling a booking, requesting a room change and filing maintenance
// tickets, plus read access to the student's own ledger entries.  All
// methods assume JWT authentication and the STUDENT role have been enforced
// by middleware; no business logic lives here.
type StudentHandler struct {
    Engine *engine.Engine
}

// NewStudentHandler constructs a StudentHandler and panics when the engine
// is missing.
func NewStudentHandler(e *engine.Engine) *StudentHandler {
    if e == nil {
        panic("nil engine passed to NewStudentHandler")
    }
    return &StudentHandler{Engine: e}
}

// ----- DTOs -----

type submitBookingReq struct {
    RoomID   string `json:"room_id"`
    FromDate string `json:"from_date"` // YYYY-MM-DD
}

type submitChangeReq struct {
    FromRoomID string `json:"from_room_id"`
    ToRoomID   string `json:"to_room_id"`
    Reason     string `json:"reason"`
}

type submitTicketReq struct {
    Subject  string `json:"subject"`
    Details  string `json:"details"`
    Priority string `json:"priority"` // LOW | NORMAL | HIGH
    RoomID   string `json:"room_id,omitempty"`
}

// SubmitBooking handles POST /v1/bookings.  It appends a pending booking
// request; a student already holding a pending or approved booking receives
// 409.
func (h *StudentHandler) SubmitBooking(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req submitBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.RoomID = strings.TrimSpace(req.RoomID)
    req.FromDate = strings.TrimSpace(req.FromDate)
    if req.RoomID == "" || req.FromDate == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and from_date are required"})
    }
    booking, err := h.Engine.SubmitBooking(c.Request().Context(), studentID, req.RoomID, req.FromDate)
    if err != nil {
        return engineError(c, err)
    }
    return c.JSON(http.StatusCreated, booking)
}

// CancelBooking handles DELETE /v1/bookings/:id.  Cancelling twice is a
// no-op; cancelling an approved booking also vacates the room slot.
func (h *StudentHandler) CancelBooking(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    booking, err := h.Engine.CancelBooking(c.Request().Context(), id, studentID)
    if err != nil {
        return engineError(c, err)
    }
    return c.JSON(http.StatusOK, booking)
}

// SubmitChange handles POST /v1/changes.  The student must hold an approved
// booking for from_room_id and no pending change request.
func (h *StudentHandler) SubmitChange(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req submitChangeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.FromRoomID = strings.TrimSpace(req.FromRoomID)
    req.ToRoomID = strings.TrimSpace(req.ToRoomID)
    if req.FromRoomID == "" || req.ToRoomID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "from_room_id and to_room_id are required"})
    }
    if req.FromRoomID == req.ToRoomID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination room must differ from current room"})
    }
    change, err := h.Engine.SubmitChange(c.Request().Context(), studentID, req.FromRoomID, req.ToRoomID, req.Reason)
    if err != nil {
        return engineError(c, err)
    }
    return c.JSON(http.StatusCreated, change)
}

// SubmitTicket handles POST /v1/tickets.  Tickets always succeed; room_id is
// optional for students without an assigned room.
func (h *StudentHandler) SubmitTicket(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req submitTicketReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Subject = strings.TrimSpace(req.Subject)
    if req.Subject == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject is required"})
    }
    priority := strings.ToUpper(strings.TrimSpace(req.Priority))
    switch priority {
    case "", model.TicketPriorityLow, model.TicketPriorityNormal, model.TicketPriorityHigh:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "priority must be LOW, NORMAL or HIGH"})
    }
    ticket, err := h.Engine.SubmitTicket(c.Request().Context(), studentID, req.Subject, req.Details, priority, strings.TrimSpace(req.RoomID))
    if err != nil {
        return engineError(c, err)
    }
    return c.JSON(http.StatusCreated, ticket)
}

// ListBookings handles GET /v1/bookings and returns the student's own
// booking requests.
func (h *StudentHandler) ListBookings(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, h.Engine.Bookings(studentID))
}

// ListChanges handles GET /v1/changes and returns the student's own change
// requests.
func (h *StudentHandler) ListChanges(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, h.Engine.Changes(studentID))
}

// ListTickets handles GET /v1/tickets and returns the student's own
// maintenance tickets.
func (h *StudentHandler) ListTickets(c echo.Context) error {
    studentID, err := accountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, h.Engine.Tickets(studentID))
}
