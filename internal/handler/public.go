package handler

import (
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hostel-room-booking/internal/engine" // allocation engine
)

// PublicHandler exposes the unauthenticated room browse endpoint.  Students
// consult it before logging in to pick a room to request.
type PublicHandler struct {
    Engine *engine.Engine
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(e *engine.Engine) *PublicHandler {
    if e == nil {
        panic("nil engine passed to NewPublicHandler")
    }
    return &PublicHandler{Engine: e}
}

// publicRoom hides the occupant identities from guests; only the counts are
// shown.
type publicRoom struct {
    ID        string `json:"id"`
    Number    string `json:"number"`
    Block     string `json:"block"`
    Floor     int    `json:"floor"`
    Type      string `json:"type"`
    Capacity  int    `json:"capacity"`
    Occupied  int    `json:"occupied"`
    Remaining int    `json:"remaining"`
}

// GetRooms handles GET /v1/rooms and returns the full room list with
// remaining capacity.
func (h *PublicHandler) GetRooms(c echo.Context) error {
    rooms := h.Engine.Rooms()
    out := make([]publicRoom, len(rooms))
    for i, r := range rooms {
        out[i] = publicRoom{
            ID:        r.ID,
            Number:    r.Number,
            Block:     r.Block,
            Floor:     r.Floor,
            Type:      r.Type,
            Capacity:  r.Capacity,
            Occupied:  len(r.Occupants),
            Remaining: r.CapacityRemaining(),
        }
    }
    return c.JSON(http.StatusOK, out)
}
