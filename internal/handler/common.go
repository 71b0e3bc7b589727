package handler // handler defines http handlers

import (
    "errors"   // errors provides the sentinel used by accountID
    "net/http" // HTTP status codes
    "strconv"  // strconv converts path parameters to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/hostel-room-booking/internal/engine" // allocation engine sentinel errors
)

// accountID extracts the account ID placed in the context by the JWTAuth
// middleware.  The subject claim is always a string for this service.
func accountID(c echo.Context) (string, error) {
    if s, ok := c.Get("account_id").(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("invalid account_id in context")
}

// pathID parses the numeric :id path parameter shared by all ledger routes.
func pathID(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}

// engineError translates an allocation engine error into the HTTP response
// the presentation layer shows as a blocking notice.  Precondition
// violations are 409/422; everything else falls through to 404/403.
func engineError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, engine.ErrDuplicateActiveBooking):
        return c.JSON(http.StatusConflict, echo.Map{"error": "you already have an active booking"})
    case errors.Is(err, engine.ErrDuplicatePendingChange):
        return c.JSON(http.StatusConflict, echo.Map{"error": "you already have a pending room change"})
    case errors.Is(err, engine.ErrNoAssignedRoom):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no assigned room"})
    case errors.Is(err, engine.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, engine.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}
