package engine

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hostel-room-booking/internal/model"
    "github.com/iliyamo/hostel-room-booking/internal/store"
)

// newTestEngine builds an engine over a fresh in-memory store, seeded with
// the deterministic 48-room layout.
func newTestEngine(t *testing.T) (*Engine, *store.Store) {
    t.Helper()
    st := store.New(store.NewMemory())
    e, err := New(context.Background(), st)
    require.NoError(t, err)
    return e, st
}

// roomByID pulls one room out of a registry snapshot.
func roomByID(t *testing.T, rooms []model.Room, id string) model.Room {
    t.Helper()
    for _, r := range rooms {
        if r.ID == id {
            return r
        }
    }
    t.Fatalf("room %s not in registry", id)
    return model.Room{}
}

// approvedBooking submits and approves a booking, failing the test on any
// error along the way.
func approvedBooking(t *testing.T, e *Engine, studentID, roomID string) model.BookingRequest {
    t.Helper()
    ctx := context.Background()
    b, err := e.SubmitBooking(ctx, studentID, roomID, "2025-09-01")
    require.NoError(t, err)
    b, err = e.DecideBooking(ctx, b.ID, true)
    require.NoError(t, err)
    require.Equal(t, model.BookingStatusApproved, b.Status)
    return b
}

func TestSubmitAndApproveBooking(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.SubmitBooking(ctx, "student-1", "A-101", "2025-09-01")
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusPending, b.Status)

    // Submitting never reserves capacity.
    assert.Empty(t, roomByID(t, e.Rooms(), "A-101").Occupants)

    b, err = e.DecideBooking(ctx, b.ID, true)
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusApproved, b.Status)
    assert.Equal(t, []string{"student-1"}, roomByID(t, e.Rooms(), "A-101").Occupants)
}

func TestDuplicateActiveBookingRejected(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    _, err := e.SubmitBooking(ctx, "student-1", "A-101", "2025-09-01")
    require.NoError(t, err)

    // Second submission before any decision lands.
    _, err = e.SubmitBooking(ctx, "student-1", "B-202", "2025-09-02")
    assert.ErrorIs(t, err, ErrDuplicateActiveBooking)
    assert.Len(t, e.Bookings("student-1"), 1)

    // Still rejected once the first booking is approved.
    first := e.Bookings("student-1")[0]
    _, err = e.DecideBooking(ctx, first.ID, true)
    require.NoError(t, err)
    _, err = e.SubmitBooking(ctx, "student-1", "B-202", "2025-09-02")
    assert.ErrorIs(t, err, ErrDuplicateActiveBooking)
}

func TestApproveFullRoomRejectsRequest(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "s1", "A-101")
    approvedBooking(t, e, "s2", "A-101")
    full := roomByID(t, e.Rooms(), "A-101")
    require.Equal(t, 0, full.CapacityRemaining())

    b, err := e.SubmitBooking(ctx, "s3", "A-101", "2025-09-01")
    require.NoError(t, err)
    b, err = e.DecideBooking(ctx, b.ID, true)
    require.NoError(t, err)

    // Capacity race resolves in favour of the registry.
    assert.Equal(t, model.BookingStatusRejected, b.Status)
    assert.Len(t, roomByID(t, e.Rooms(), "A-101").Occupants, 2)
}

func TestDecideBookingIdempotent(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.SubmitBooking(ctx, "student-1", "A-101", "2025-09-01")
    require.NoError(t, err)
    _, err = e.DecideBooking(ctx, b.ID, true)
    require.NoError(t, err)

    // The second approval is a no-op: still one occupant.
    again, err := e.DecideBooking(ctx, b.ID, true)
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusApproved, again.Status)
    assert.Equal(t, []string{"student-1"}, roomByID(t, e.Rooms(), "A-101").Occupants)

    // A late reject cannot undo an approval either.
    again, err = e.DecideBooking(ctx, b.ID, false)
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusApproved, again.Status)
}

func TestDecideBookingUnknownID(t *testing.T) {
    e, _ := newTestEngine(t)
    _, err := e.DecideBooking(context.Background(), 9999, true)
    assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelApprovedBookingReleasesSlot(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b := approvedBooking(t, e, "student-1", "A-101")

    cancelled, err := e.CancelBooking(ctx, b.ID, "student-1")
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
    assert.Empty(t, roomByID(t, e.Rooms(), "A-101").Occupants)

    // Cancelling again is a no-op.
    cancelled, err = e.CancelBooking(ctx, b.ID, "student-1")
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
}

func TestCancelBookingOfAnotherStudent(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.SubmitBooking(ctx, "student-1", "A-101", "2025-09-01")
    require.NoError(t, err)
    _, err = e.CancelBooking(ctx, b.ID, "intruder")
    assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitChangeRequiresAssignedRoom(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    _, err := e.SubmitChange(ctx, "student-1", "A-101", "B-101", "closer to classes")
    assert.ErrorIs(t, err, ErrNoAssignedRoom)
    assert.Empty(t, e.Changes(""))

    // A pending booking is not an assigned room.
    _, err = e.SubmitBooking(ctx, "student-1", "A-101", "2025-09-01")
    require.NoError(t, err)
    _, err = e.SubmitChange(ctx, "student-1", "A-101", "B-101", "closer to classes")
    assert.ErrorIs(t, err, ErrNoAssignedRoom)
}

func TestSubmitChangeDuplicatePending(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "student-1", "A-101")
    _, err := e.SubmitChange(ctx, "student-1", "A-101", "B-101", "noise")
    require.NoError(t, err)
    _, err = e.SubmitChange(ctx, "student-1", "A-101", "C-101", "still noise")
    assert.ErrorIs(t, err, ErrDuplicatePendingChange)
}

func TestApproveChangeMovesOccupant(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "student-1", "A-101")
    ch, err := e.SubmitChange(ctx, "student-1", "A-101", "B-101", "friends in block B")
    require.NoError(t, err)

    ch, err = e.DecideChange(ctx, ch.ID, true)
    require.NoError(t, err)
    assert.Equal(t, model.ChangeStatusApproved, ch.Status)

    rooms := e.Rooms()
    assert.Empty(t, roomByID(t, rooms, "A-101").Occupants)
    assert.Equal(t, []string{"student-1"}, roomByID(t, rooms, "B-101").Occupants)

    // Only the requesting student's booking is retargeted.
    bookings := e.Bookings("student-1")
    require.Len(t, bookings, 1)
    assert.Equal(t, "B-101", bookings[0].RoomID)
}

func TestApproveChangeScopedToRequester(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "s1", "A-101")
    approvedBooking(t, e, "s2", "C-101")

    ch, err := e.SubmitChange(ctx, "s1", "A-101", "B-101", "moving")
    require.NoError(t, err)
    _, err = e.DecideChange(ctx, ch.ID, true)
    require.NoError(t, err)

    // The bystander's booking still points at its own room.
    other := e.Bookings("s2")
    require.Len(t, other, 1)
    assert.Equal(t, "C-101", other[0].RoomID)
    assert.Equal(t, []string{"s2"}, roomByID(t, e.Rooms(), "C-101").Occupants)
}

func TestApproveChangeToFullRoomRejects(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "s1", "B-101")
    approvedBooking(t, e, "s2", "B-101")
    approvedBooking(t, e, "s3", "A-101")

    ch, err := e.SubmitChange(ctx, "s3", "A-101", "B-101", "prefers block B")
    require.NoError(t, err)
    ch, err = e.DecideChange(ctx, ch.ID, true)
    require.NoError(t, err)

    // Destination capacity is enforced: the change is rejected, nobody moves.
    assert.Equal(t, model.ChangeStatusRejected, ch.Status)
    rooms := e.Rooms()
    assert.Len(t, roomByID(t, rooms, "B-101").Occupants, 2)
    assert.Equal(t, []string{"s3"}, roomByID(t, rooms, "A-101").Occupants)
    assert.Equal(t, "A-101", e.Bookings("s3")[0].RoomID)
}

func TestApproveChangeMissingRoomIsDropped(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "student-1", "A-101")
    ch, err := e.SubmitChange(ctx, "student-1", "A-101", "Z-999", "ghost room")
    require.NoError(t, err)

    // The decision is silently dropped; the request stays pending.
    ch, err = e.DecideChange(ctx, ch.ID, true)
    require.NoError(t, err)
    assert.Equal(t, model.ChangeStatusPending, ch.Status)
    assert.Equal(t, []string{"student-1"}, roomByID(t, e.Rooms(), "A-101").Occupants)
}

func TestApproveChangeAfterCancelledBookingRejects(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b := approvedBooking(t, e, "student-1", "A-101")
    ch, err := e.SubmitChange(ctx, "student-1", "A-101", "B-101", "quieter block")
    require.NoError(t, err)

    // The booking is cancelled while the change is still pending.
    _, err = e.CancelBooking(ctx, b.ID, "student-1")
    require.NoError(t, err)

    // The stale change is rejected: the student gave up the slot and must
    // not be moved into the destination room.
    ch, err = e.DecideChange(ctx, ch.ID, true)
    require.NoError(t, err)
    assert.Equal(t, model.ChangeStatusRejected, ch.Status)

    rooms := e.Rooms()
    assert.Empty(t, roomByID(t, rooms, "A-101").Occupants)
    assert.Empty(t, roomByID(t, rooms, "B-101").Occupants)

    // A fresh booking afterwards puts the student in exactly one room.
    nb, err := e.SubmitBooking(ctx, "student-1", "C-101", "2025-10-01")
    require.NoError(t, err)
    _, err = e.DecideBooking(ctx, nb.ID, true)
    require.NoError(t, err)

    occupied := 0
    for _, r := range e.Rooms() {
        for _, occ := range r.Occupants {
            if occ == "student-1" {
                occupied++
            }
        }
    }
    assert.Equal(t, 1, occupied)
}

func TestDecideChangeIdempotent(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    approvedBooking(t, e, "student-1", "A-101")
    ch, err := e.SubmitChange(ctx, "student-1", "A-101", "B-101", "quiet floor")
    require.NoError(t, err)
    _, err = e.DecideChange(ctx, ch.ID, false)
    require.NoError(t, err)

    // Approving a rejected change is ignored.
    again, err := e.DecideChange(ctx, ch.ID, true)
    require.NoError(t, err)
    assert.Equal(t, model.ChangeStatusRejected, again.Status)
    assert.Equal(t, []string{"student-1"}, roomByID(t, e.Rooms(), "A-101").Occupants)
}

func TestTicketLifecycle(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    tk, err := e.SubmitTicket(ctx, "student-1", "Broken heater", "No heat since Monday", "", "A-101")
    require.NoError(t, err)
    assert.Equal(t, model.TicketStatusOpen, tk.Status)
    assert.Equal(t, model.TicketPriorityNormal, tk.Priority) // empty priority defaults

    tk, err = e.ResolveTicket(ctx, tk.ID)
    require.NoError(t, err)
    assert.Equal(t, model.TicketStatusResolved, tk.Status)

    // Resolving again is a no-op.
    tk, err = e.ResolveTicket(ctx, tk.ID)
    require.NoError(t, err)
    assert.Equal(t, model.TicketStatusResolved, tk.Status)

    _, err = e.ResolveTicket(ctx, 9999)
    assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketWithoutRoom(t *testing.T) {
    e, _ := newTestEngine(t)
    tk, err := e.SubmitTicket(context.Background(), "student-1", "Lost key card", "", model.TicketPriorityHigh, "")
    require.NoError(t, err)
    assert.Empty(t, tk.RoomID)
    assert.Equal(t, model.TicketPriorityHigh, tk.Priority)
}

// Occupancy may never exceed capacity, whatever sequence of operations runs.
func TestOccupancyNeverExceedsCapacity(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    students := []string{"s1", "s2", "s3", "s4", "s5"}
    for _, s := range students {
        if b, err := e.SubmitBooking(ctx, s, "A-101", "2025-09-01"); err == nil {
            _, _ = e.DecideBooking(ctx, b.ID, true)
        }
    }
    for _, r := range e.Rooms() {
        assert.LessOrEqual(t, len(r.Occupants), r.Capacity, "room %s over capacity", r.ID)
    }
}

// At most one active booking per student, across submissions and decisions.
func TestOneActiveBookingPerStudent(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b := approvedBooking(t, e, "student-1", "A-101")
    _, err := e.CancelBooking(ctx, b.ID, "student-1")
    require.NoError(t, err)

    // After cancelling, a fresh booking is allowed again.
    _, err = e.SubmitBooking(ctx, "student-1", "B-101", "2025-10-01")
    require.NoError(t, err)

    active := 0
    for _, bk := range e.Bookings("student-1") {
        if bk.Active() {
            active++
        }
    }
    assert.Equal(t, 1, active)
}

// State survives an engine restart over the same store: the second engine
// sees structurally identical collections.
func TestStateRoundTripAcrossRestart(t *testing.T) {
    mem := store.NewMemory()
    st := store.New(mem)
    ctx := context.Background()

    e1, err := New(ctx, st)
    require.NoError(t, err)
    b := approvedBooking(t, e1, "student-1", "A-101")
    _, err = e1.SubmitTicket(ctx, "student-1", "Flickering light", "", model.TicketPriorityLow, "A-101")
    require.NoError(t, err)

    e2, err := New(ctx, store.New(mem))
    require.NoError(t, err)
    assert.Equal(t, e1.Rooms(), e2.Rooms())
    assert.Equal(t, e1.Bookings(""), e2.Bookings(""))
    assert.Equal(t, e1.Tickets(""), e2.Tickets(""))

    // Ledger IDs keep growing after the restart.
    nb, err := e2.SubmitBooking(ctx, "student-2", "B-101", "2025-09-01")
    require.NoError(t, err)
    assert.Greater(t, nb.ID, b.ID)
}

// Snapshots are copies: mutating a returned room must not leak into the
// engine.
func TestSnapshotsAreCopies(t *testing.T) {
    e, _ := newTestEngine(t)
    approvedBooking(t, e, "student-1", "A-101")

    rooms := e.Rooms()
    r := roomByID(t, rooms, "A-101")
    r.Occupants[0] = "tampered"

    assert.Equal(t, []string{"student-1"}, roomByID(t, e.Rooms(), "A-101").Occupants)
}
