package model

import "time"

// Booking request status enumeration values.  REJECTED and CANCELLED are
// terminal.  An APPROVED booking can still be cancelled by its student or
// retargeted to another room by an approved room change.
const (
    BookingStatusPending   = "PENDING"
    BookingStatusApproved  = "APPROVED"
    BookingStatusRejected  = "REJECTED"
    BookingStatusCancelled = "CANCELLED"
)

// BookingRequest records a student's request for a room.  Entries live in
// the booking ledger and are immutable once created, except for Status and,
// after an approved room change, RoomID.  Occupancy is reserved only when an
// administrator approves the request, never on submission.
//
// Fields:
//  ID          – ledger-wide unique identifier.
//  StudentID   – student who submitted the request.
//  RoomID      – room the student asked for (or was moved to).
//  FromDate    – requested move-in date in YYYY-MM-DD form.
//  Status      – PENDING, APPROVED, REJECTED or CANCELLED.
//  RequestedAt – submission timestamp in UTC.
type BookingRequest struct {
    ID          uint64    `json:"id"`
    StudentID   string    `json:"student_id"`
    RoomID      string    `json:"room_id"`
    FromDate    string    `json:"from_date"`
    Status      string    `json:"status"`
    RequestedAt time.Time `json:"requested_at"`
}

// Active reports whether the request still counts against the one active
// booking allowed per student, i.e. it is pending or approved.
func (b *BookingRequest) Active() bool {
    return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}
