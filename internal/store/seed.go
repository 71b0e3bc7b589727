package store

import (
    "fmt"

    "github.com/iliyamo/hostel-room-booking/internal/model"
)

// Fixed dimensions of the seeded hostel layout.
const (
    seedBlocks        = 4 // blocks A through D
    seedFloors        = 3 // floors 1 through 3
    seedRoomsPerFloor = 4
    seedCapacity      = 2
)

// SeedRooms builds the deterministic 48-room layout used when no registry
// has been persisted yet: 4 blocks x 3 floors x 4 rooms, every room with
// capacity 2, top-floor rooms DELUXE and all others STANDARD.  Room numbers
// follow the "A-101" pattern: block letter, floor digit, room index.
func SeedRooms() []model.Room {
    rooms := make([]model.Room, 0, seedBlocks*seedFloors*seedRoomsPerFloor)
    for b := 0; b < seedBlocks; b++ {
        block := string(rune('A' + b))
        for floor := 1; floor <= seedFloors; floor++ {
            for i := 1; i <= seedRoomsPerFloor; i++ {
                number := fmt.Sprintf("%s-%d%02d", block, floor, i)
                roomType := model.RoomTypeStandard
                if floor == seedFloors {
                    roomType = model.RoomTypeDeluxe
                }
                rooms = append(rooms, model.Room{
                    ID:        number,
                    Number:    number,
                    Block:     block,
                    Floor:     floor,
                    Capacity:  seedCapacity,
                    Occupants: []string{},
                    Type:      roomType,
                })
            }
        }
    }
    return rooms
}
