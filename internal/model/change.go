package model

import "time"

// Room change request status enumeration values.  Both REJECTED and
// APPROVED are terminal; a change request is never cancelled.
const (
    ChangeStatusPending  = "PENDING"
    ChangeStatusApproved = "APPROVED"
    ChangeStatusRejected = "REJECTED"
)

// ChangeRequest records a student's wish to move from their assigned room to
// another one.  Submitting requires an approved booking; at most one change
// request per student may be pending at a time.
//
// Fields:
//  ID          – ledger-wide unique identifier.
//  StudentID   – student who asked for the move.
//  FromRoomID  – the student's current room.
//  ToRoomID    – the room the student wants to move into.
//  Reason      – free-form justification entered by the student.
//  Status      – PENDING, APPROVED or REJECTED.
//  RequestedAt – submission timestamp in UTC.
type ChangeRequest struct {
    ID          uint64    `json:"id"`
    StudentID   string    `json:"student_id"`
    FromRoomID  string    `json:"from_room_id"`
    ToRoomID    string    `json:"to_room_id"`
    Reason      string    `json:"reason"`
    Status      string    `json:"status"`
    RequestedAt time.Time `json:"requested_at"`
}
