// Package store implements the persistence adapter.  All durable state is
// kept in an opaque map from string key to serialized value: the room
// registry and the three ledgers are stored as JSON blobs under four stable
// keys.  Several backends implement the map (in-memory, Redis, MySQL); the
// rest of the application only ever sees the Store type.
package store

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"

    "github.com/iliyamo/hostel-room-booking/internal/model"
)

// ErrKeyNotFound is returned by a KV backend when no value exists under the
// requested key.  The Store treats it the same as a malformed value: the
// caller receives the seed/default collection instead of an error.
var ErrKeyNotFound = errors.New("store: key not found")

// KV is the minimal contract a persistence backend must satisfy.  Values are
// opaque byte slices; the backend never inspects them.
type KV interface {
    // Get returns the value stored under key, or ErrKeyNotFound.
    Get(ctx context.Context, key string) ([]byte, error)
    // Set stores value under key, replacing any previous value.
    Set(ctx context.Context, key string, value []byte) error
}

// Stable keys for the four persisted collections.  Changing a key abandons
// previously stored data; there is no versioning or migration scheme.
const (
    keyRooms    = "hostel:rooms"
    keyBookings = "hostel:booking_requests"
    keyChanges  = "hostel:change_requests"
    keyTickets  = "hostel:maintenance_tickets"
)

// Store loads and saves the room registry and the three request ledgers
// through a KV backend.  Missing or malformed values never surface as
// errors: rooms fall back to the deterministic seed layout and ledgers fall
// back to empty, so the allocation engine never observes corrupt state.
type Store struct {
    kv KV
}

// New returns a Store backed by the given KV implementation.
func New(kv KV) *Store { return &Store{kv: kv} }

// load unmarshals the value under key into out.  It reports false when the
// key is absent or the stored value cannot be decoded, in which case the
// caller substitutes its default.
func (s *Store) load(ctx context.Context, key string, out interface{}) bool {
    raw, err := s.kv.Get(ctx, key)
    if err != nil {
        if !errors.Is(err, ErrKeyNotFound) {
            log.Printf("store: get %s failed: %v; using default", key, err)
        }
        return false
    }
    if err := json.Unmarshal(raw, out); err != nil {
        log.Printf("store: value under %s is malformed: %v; using default", key, err)
        return false
    }
    return true
}

// save marshals v and writes it under key.
func (s *Store) save(ctx context.Context, key string, v interface{}) error {
    raw, err := json.Marshal(v)
    if err != nil {
        return fmt.Errorf("store: marshal %s: %w", key, err)
    }
    if err := s.kv.Set(ctx, key, raw); err != nil {
        return fmt.Errorf("store: set %s: %w", key, err)
    }
    return nil
}

// LoadRooms returns the persisted room registry.  On first run (or when the
// stored registry is unreadable) it seeds the deterministic 48-room layout,
// persists it and returns it, making the seeding procedure idempotent.
func (s *Store) LoadRooms(ctx context.Context) ([]model.Room, error) {
    var rooms []model.Room
    if s.load(ctx, keyRooms, &rooms) && len(rooms) > 0 {
        return rooms, nil
    }
    rooms = SeedRooms()
    if err := s.SaveRooms(ctx, rooms); err != nil {
        return nil, err
    }
    return rooms, nil
}

// SaveRooms persists the room registry.
func (s *Store) SaveRooms(ctx context.Context, rooms []model.Room) error {
    return s.save(ctx, keyRooms, rooms)
}

// LoadBookings returns the booking ledger, empty when nothing was persisted.
func (s *Store) LoadBookings(ctx context.Context) ([]model.BookingRequest, error) {
    bookings := []model.BookingRequest{}
    s.load(ctx, keyBookings, &bookings)
    return bookings, nil
}

// SaveBookings persists the booking ledger.
func (s *Store) SaveBookings(ctx context.Context, bookings []model.BookingRequest) error {
    return s.save(ctx, keyBookings, bookings)
}

// LoadChanges returns the room-change ledger, empty when nothing was persisted.
func (s *Store) LoadChanges(ctx context.Context) ([]model.ChangeRequest, error) {
    changes := []model.ChangeRequest{}
    s.load(ctx, keyChanges, &changes)
    return changes, nil
}

// SaveChanges persists the room-change ledger.
func (s *Store) SaveChanges(ctx context.Context, changes []model.ChangeRequest) error {
    return s.save(ctx, keyChanges, changes)
}

// LoadTickets returns the maintenance ledger, empty when nothing was persisted.
func (s *Store) LoadTickets(ctx context.Context) ([]model.MaintenanceTicket, error) {
    tickets := []model.MaintenanceTicket{}
    s.load(ctx, keyTickets, &tickets)
    return tickets, nil
}

// SaveTickets persists the maintenance ledger.
func (s *Store) SaveTickets(ctx context.Context, tickets []model.MaintenanceTicket) error {
    return s.save(ctx, keyTickets, tickets)
}
