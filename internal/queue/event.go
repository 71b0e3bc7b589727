// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds published on the hostel.decisions queue.
const (
    KindBookingDecided = "booking.decided"
    KindChangeDecided  = "change.decided"
    KindTicketResolved = "ticket.resolved"
)

// DecisionEvent is published whenever an administrator settles a ledger
// entry: a booking or room-change decision, or a ticket resolution.  It
// carries enough information for downstream consumers to log or notify
// without reading the primary store.
type DecisionEvent struct {
    Kind      string `json:"kind"`
    RequestID uint64 `json:"request_id"`
    StudentID string `json:"student_id"`
    RoomID    string `json:"room_id,omitempty"`
    Status    string `json:"status"`
    DecidedAt string `json:"decided_at"`
}
