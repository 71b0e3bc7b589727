package engine

import (
    "context"
    "log"
    "sync"
    "time"

    "github.com/iliyamo/hostel-room-booking/internal/model"
    "github.com/iliyamo/hostel-room-booking/internal/store"
)

// Engine is the allocation engine: the sole writer of room occupant lists
// and of the status fields on ledger entries.  It owns the room registry and
// the three ledgers in memory and writes every touched collection back to
// the persistence adapter before an operation returns, so an in-memory
// change and its durable write are never observably separated.
//
// A single mutex serializes all operations.  Every operation runs to
// completion before the next one starts; no interleaving of two decisions is
// observable, matching the one-logical-actor execution model.
type Engine struct {
    mu sync.Mutex

    store    *store.Store
    rooms    []model.Room
    bookings []model.BookingRequest
    changes  []model.ChangeRequest
    tickets  []model.MaintenanceTicket
    nextID   uint64
}

// New loads the room registry and ledgers from the store (seeding the
// registry on first run) and returns an engine ready to serve operations.
func New(ctx context.Context, st *store.Store) (*Engine, error) {
    rooms, err := st.LoadRooms(ctx)
    if err != nil {
        return nil, err
    }
    bookings, err := st.LoadBookings(ctx)
    if err != nil {
        return nil, err
    }
    changes, err := st.LoadChanges(ctx)
    if err != nil {
        return nil, err
    }
    tickets, err := st.LoadTickets(ctx)
    if err != nil {
        return nil, err
    }
    e := &Engine{
        store:    st,
        rooms:    rooms,
        bookings: bookings,
        changes:  changes,
        tickets:  tickets,
        nextID:   1,
    }
    // Ledger IDs keep growing across restarts.
    for _, b := range bookings {
        if b.ID >= e.nextID {
            e.nextID = b.ID + 1
        }
    }
    for _, c := range changes {
        if c.ID >= e.nextID {
            e.nextID = c.ID + 1
        }
    }
    for _, t := range tickets {
        if t.ID >= e.nextID {
            e.nextID = t.ID + 1
        }
    }
    return e, nil
}

// SubmitBooking appends a pending booking request for the student.  No room
// is mutated: capacity is reserved on approval, not on request, so
// unconfirmed requests never hold capacity.  A student holding a pending or
// approved booking is rejected with ErrDuplicateActiveBooking.
func (e *Engine) SubmitBooking(ctx context.Context, studentID, roomID, fromDate string) (model.BookingRequest, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    for i := range e.bookings {
        if e.bookings[i].StudentID == studentID && e.bookings[i].Active() {
            return model.BookingRequest{}, ErrDuplicateActiveBooking
        }
    }
    req := model.BookingRequest{
        ID:          e.nextID,
        StudentID:   studentID,
        RoomID:      roomID,
        FromDate:    fromDate,
        Status:      model.BookingStatusPending,
        RequestedAt: time.Now().UTC(),
    }
    e.nextID++
    e.bookings = append(e.bookings, req)
    e.persistBookings(ctx)
    return req, nil
}

// DecideBooking applies an administrator decision to a pending booking
// request.  Decisions on non-pending requests are ignored and the current
// record is returned unchanged, which makes the operation safe against
// double submissions.  On approval the target room is consulted once more:
// if it is gone or full the request is rejected instead, resolving any
// capacity race in favour of the registry.  Adding the occupant and setting
// the status happen under the same lock and persist together.
func (e *Engine) DecideBooking(ctx context.Context, requestID uint64, approve bool) (model.BookingRequest, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    b := e.findBooking(requestID)
    if b == nil {
        return model.BookingRequest{}, ErrNotFound
    }
    if b.Status != model.BookingStatusPending {
        return *b, nil
    }
    if !approve {
        b.Status = model.BookingStatusRejected
        e.persistBookings(ctx)
        return *b, nil
    }
    room := e.findRoom(b.RoomID)
    if room == nil || room.CapacityRemaining() <= 0 {
        b.Status = model.BookingStatusRejected
        e.persistBookings(ctx)
        return *b, nil
    }
    room.Occupants = append(room.Occupants, b.StudentID)
    b.Status = model.BookingStatusApproved
    e.persistRooms(ctx)
    e.persistBookings(ctx)
    return *b, nil
}

// CancelBooking cancels the student's booking request.  Cancelling an
// already cancelled request is a no-op.  Cancelling an approved booking
// releases the occupied slot so the registry never carries occupants of
// cancelled bookings.
func (e *Engine) CancelBooking(ctx context.Context, requestID uint64, studentID string) (model.BookingRequest, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    b := e.findBooking(requestID)
    if b == nil {
        return model.BookingRequest{}, ErrNotFound
    }
    if b.StudentID != studentID {
        return model.BookingRequest{}, ErrForbidden
    }
    if b.Status == model.BookingStatusCancelled {
        return *b, nil
    }
    if b.Status == model.BookingStatusApproved {
        if room := e.findRoom(b.RoomID); room != nil {
            removeOccupant(room, studentID)
            e.persistRooms(ctx)
        }
    }
    b.Status = model.BookingStatusCancelled
    e.persistBookings(ctx)
    return *b, nil
}

// SubmitChange appends a pending room-change request.  The student must hold
// an approved booking for fromRoomID (else ErrNoAssignedRoom) and must not
// have another change request pending (else ErrDuplicatePendingChange).
func (e *Engine) SubmitChange(ctx context.Context, studentID, fromRoomID, toRoomID, reason string) (model.ChangeRequest, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    assigned := e.findApprovedBooking(studentID)
    if assigned == nil || assigned.RoomID != fromRoomID {
        return model.ChangeRequest{}, ErrNoAssignedRoom
    }
    for i := range e.changes {
        if e.changes[i].StudentID == studentID && e.changes[i].Status == model.ChangeStatusPending {
            return model.ChangeRequest{}, ErrDuplicatePendingChange
        }
    }
    req := model.ChangeRequest{
        ID:          e.nextID,
        StudentID:   studentID,
        FromRoomID:  fromRoomID,
        ToRoomID:    toRoomID,
        Reason:      reason,
        Status:      model.ChangeStatusPending,
        RequestedAt: time.Now().UTC(),
    }
    e.nextID++
    e.changes = append(e.changes, req)
    e.persistChanges(ctx)
    return req, nil
}

// DecideChange applies an administrator decision to a pending room-change
// request.  Non-pending requests are left untouched.  On approval:
//
//   - if either room no longer exists the decision is dropped without any
//     mutation and the request stays pending;
//   - if the requester no longer holds an approved booking for the source
//     room (cancelled in the meantime, for instance) the request is
//     rejected, so a stale change can never move a student who has already
//     given up their slot;
//   - if the destination room is full the request is rejected instead of
//     overfilling the room;
//   - otherwise the student moves from the source room to the destination
//     room and the requester's approved booking is retargeted to the new
//     room.
func (e *Engine) DecideChange(ctx context.Context, requestID uint64, approve bool) (model.ChangeRequest, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    c := e.findChange(requestID)
    if c == nil {
        return model.ChangeRequest{}, ErrNotFound
    }
    if c.Status != model.ChangeStatusPending {
        return *c, nil
    }
    if !approve {
        c.Status = model.ChangeStatusRejected
        e.persistChanges(ctx)
        return *c, nil
    }
    fromRoom := e.findRoom(c.FromRoomID)
    toRoom := e.findRoom(c.ToRoomID)
    if fromRoom == nil || toRoom == nil {
        return *c, nil
    }
    booking := e.findApprovedBooking(c.StudentID)
    if booking == nil || booking.RoomID != c.FromRoomID {
        c.Status = model.ChangeStatusRejected
        e.persistChanges(ctx)
        return *c, nil
    }
    if toRoom.CapacityRemaining() <= 0 {
        c.Status = model.ChangeStatusRejected
        e.persistChanges(ctx)
        return *c, nil
    }
    removeOccupant(fromRoom, c.StudentID)
    toRoom.Occupants = append(toRoom.Occupants, c.StudentID)
    booking.RoomID = c.ToRoomID
    c.Status = model.ChangeStatusApproved
    e.persistRooms(ctx)
    e.persistBookings(ctx)
    e.persistChanges(ctx)
    return *c, nil
}

// SubmitTicket appends an open maintenance ticket.  Tickets are accepted
// unconditionally; roomID may be empty when the student has no assigned
// room.  An empty priority defaults to NORMAL.
func (e *Engine) SubmitTicket(ctx context.Context, studentID, subject, details, priority, roomID string) (model.MaintenanceTicket, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    if priority == "" {
        priority = model.TicketPriorityNormal
    }
    t := model.MaintenanceTicket{
        ID:        e.nextID,
        StudentID: studentID,
        Subject:   subject,
        Details:   details,
        Priority:  priority,
        Status:    model.TicketStatusOpen,
        RoomID:    roomID,
        CreatedAt: time.Now().UTC(),
    }
    e.nextID++
    e.tickets = append(e.tickets, t)
    e.persistTickets(ctx)
    return t, nil
}

// ResolveTicket marks a ticket resolved.  Resolving an already resolved
// ticket is a no-op.
func (e *Engine) ResolveTicket(ctx context.Context, ticketID uint64) (model.MaintenanceTicket, error) {
    e.mu.Lock()
    defer e.mu.Unlock()

    t := e.findTicket(ticketID)
    if t == nil {
        return model.MaintenanceTicket{}, ErrNotFound
    }
    if t.Status == model.TicketStatusResolved {
        return *t, nil
    }
    t.Status = model.TicketStatusResolved
    e.persistTickets(ctx)
    return *t, nil
}

// Rooms returns a snapshot of the room registry.  Occupant slices are copied
// so callers can never mutate engine state.
func (e *Engine) Rooms() []model.Room {
    e.mu.Lock()
    defer e.mu.Unlock()
    out := make([]model.Room, len(e.rooms))
    for i, r := range e.rooms {
        occ := make([]string, len(r.Occupants))
        copy(occ, r.Occupants)
        r.Occupants = occ
        out[i] = r
    }
    return out
}

// Bookings returns a snapshot of the booking ledger.  An empty studentID
// returns every entry; otherwise only the student's own entries.
func (e *Engine) Bookings(studentID string) []model.BookingRequest {
    e.mu.Lock()
    defer e.mu.Unlock()
    out := make([]model.BookingRequest, 0, len(e.bookings))
    for _, b := range e.bookings {
        if studentID == "" || b.StudentID == studentID {
            out = append(out, b)
        }
    }
    return out
}

// Changes returns a snapshot of the room-change ledger, optionally filtered
// by student.
func (e *Engine) Changes(studentID string) []model.ChangeRequest {
    e.mu.Lock()
    defer e.mu.Unlock()
    out := make([]model.ChangeRequest, 0, len(e.changes))
    for _, c := range e.changes {
        if studentID == "" || c.StudentID == studentID {
            out = append(out, c)
        }
    }
    return out
}

// Tickets returns a snapshot of the maintenance ledger, optionally filtered
// by student.
func (e *Engine) Tickets(studentID string) []model.MaintenanceTicket {
    e.mu.Lock()
    defer e.mu.Unlock()
    out := make([]model.MaintenanceTicket, 0, len(e.tickets))
    for _, t := range e.tickets {
        if studentID == "" || t.StudentID == studentID {
            out = append(out, t)
        }
    }
    return out
}

// findRoom returns a pointer into the registry, nil when the room is unknown.
func (e *Engine) findRoom(id string) *model.Room {
    for i := range e.rooms {
        if e.rooms[i].ID == id {
            return &e.rooms[i]
        }
    }
    return nil
}

func (e *Engine) findBooking(id uint64) *model.BookingRequest {
    for i := range e.bookings {
        if e.bookings[i].ID == id {
            return &e.bookings[i]
        }
    }
    return nil
}

// findApprovedBooking returns the student's approved booking, nil when the
// student has no assigned room.
func (e *Engine) findApprovedBooking(studentID string) *model.BookingRequest {
    for i := range e.bookings {
        if e.bookings[i].StudentID == studentID && e.bookings[i].Status == model.BookingStatusApproved {
            return &e.bookings[i]
        }
    }
    return nil
}

func (e *Engine) findChange(id uint64) *model.ChangeRequest {
    for i := range e.changes {
        if e.changes[i].ID == id {
            return &e.changes[i]
        }
    }
    return nil
}

func (e *Engine) findTicket(id uint64) *model.MaintenanceTicket {
    for i := range e.tickets {
        if e.tickets[i].ID == id {
            return &e.tickets[i]
        }
    }
    return nil
}

// removeOccupant deletes one occurrence of studentID from the room.  A room
// that does not hold the student is left untouched, so occupancy is clamped
// at zero and never goes negative.
func removeOccupant(room *model.Room, studentID string) {
    for i, occ := range room.Occupants {
        if occ == studentID {
            room.Occupants = append(room.Occupants[:i], room.Occupants[i+1:]...)
            return
        }
    }
}

// Persistence is fire-and-forget: a failed write is logged and the operation
// still succeeds, because nothing in this system is allowed to be fatal.
func (e *Engine) persistRooms(ctx context.Context) {
    if err := e.store.SaveRooms(ctx, e.rooms); err != nil {
        log.Printf("engine: persist rooms failed: %v", err)
    }
}

func (e *Engine) persistBookings(ctx context.Context) {
    if err := e.store.SaveBookings(ctx, e.bookings); err != nil {
        log.Printf("engine: persist bookings failed: %v", err)
    }
}

func (e *Engine) persistChanges(ctx context.Context) {
    if err := e.store.SaveChanges(ctx, e.changes); err != nil {
        log.Printf("engine: persist changes failed: %v", err)
    }
}

func (e *Engine) persistTickets(ctx context.Context) {
    if err := e.store.SaveTickets(ctx, e.tickets); err != nil {
        log.Printf("engine: persist tickets failed: %v", err)
    }
}
