package model

import "time"

// Maintenance ticket status and priority enumeration values.  RESOLVED is
// terminal and can only be set by an administrator.
const (
    TicketStatusOpen     = "OPEN"
    TicketStatusResolved = "RESOLVED"

    TicketPriorityLow    = "LOW"
    TicketPriorityNormal = "NORMAL"
    TicketPriorityHigh   = "HIGH"
)

// MaintenanceTicket records a maintenance problem reported by a student.
// Tickets are accepted unconditionally; RoomID is empty when the student has
// no assigned room yet.
//
// Fields:
//  ID        – ledger-wide unique identifier.
//  StudentID – student who filed the ticket.
//  Subject   – short summary of the problem.
//  Details   – longer free-form description.
//  Priority  – LOW, NORMAL or HIGH.
//  Status    – OPEN or RESOLVED.
//  RoomID    – affected room, empty if unassigned.
//  CreatedAt – creation timestamp in UTC.
type MaintenanceTicket struct {
    ID        uint64    `json:"id"`
    StudentID string    `json:"student_id"`
    Subject   string    `json:"subject"`
    Details   string    `json:"details"`
    Priority  string    `json:"priority"`
    Status    string    `json:"status"`
    RoomID    string    `json:"room_id,omitempty"`
    CreatedAt time.Time `json:"created_at"`
}
