package model

// Room type enumeration values.  Rooms on the top floor of each block are
// DELUXE; every other room is STANDARD.
const (
    RoomTypeStandard = "STANDARD"
    RoomTypeDeluxe   = "DELUXE"
)

// Room represents a single hostel room in the registry.  The registry is
// seeded once and rooms are never created or destroyed afterwards; only the
// Occupants list changes, and only through the allocation engine.
//
// Fields:
//  ID        – stable identifier, identical to the room number (e.g. "A-101").
//  Number    – human readable room number (block letter, floor, index).
//  Block     – block letter ("A" through "D").
//  Floor     – floor number within the block (1 to 3).
//  Capacity  – maximum number of occupants allowed.
//  Occupants – student IDs currently assigned to the room.  The length of
//              this slice may never exceed Capacity.
//  Type      – STANDARD or DELUXE.
type Room struct {
    ID        string   `json:"id"`        // rooms key: id
    Number    string   `json:"number"`    // rooms key: number
    Block     string   `json:"block"`     // rooms key: block
    Floor     int      `json:"floor"`     // rooms key: floor
    Capacity  int      `json:"capacity"`  // rooms key: capacity
    Occupants []string `json:"occupants"` // rooms key: occupants
    Type      string   `json:"type"`      // rooms key: type
}

// CapacityRemaining returns how many more occupants the room can take.  It
// is never negative for a room that has only been mutated through the
// allocation engine.
func (r *Room) CapacityRemaining() int {
    return r.Capacity - len(r.Occupants)
}
