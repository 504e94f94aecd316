package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Room is a listing registered on the RoomShare contract. Rooms are created
// and mutated only on-chain; this layer treats them as read-only records.
type Room struct {
	ID       uint64         `json:"id"`
	Name     string         `json:"name"`
	Location string         `json:"location"`
	IsActive bool           `json:"is_active"`
	Price    uint64         `json:"price"` // per-day price in finney (0.001 ETH)
	Owner    common.Address `json:"owner"`
}

// OwnerShort returns the owner address truncated for table display.
func (r Room) OwnerShort() string {
	return ShortAddress(r.Owner, 7)
}

// Label renders the selector line for an active room,
// e.g. "3 | Sea View | Busan | 2 finney/day | 0x4147248382B8Dc4...".
func (r Room) Label() string {
	return fmt.Sprintf("%d | %s | %s | %d finney/day | %s",
		r.ID, r.Name, r.Location, r.Price, ShortAddress(r.Owner, 17))
}

// Rent is a completed rental recorded on the contract. The stay is stored as
// a (year, day-of-year) pair; convert with DateFromDay for display.
type Rent struct {
	ID       uint64         `json:"id"`
	RoomID   uint64         `json:"room_id"`
	Year     int            `json:"year"`
	CheckIn  int            `json:"check_in"`  // day of year, 1-based
	CheckOut int            `json:"check_out"` // day of year, 1-based
	Renter   common.Address `json:"renter"`
}

// CheckInDate returns the calendar date of the rental's check-in day.
func (r Rent) CheckInDate() string {
	return FormatDate(DateFromDay(r.Year, r.CheckIn))
}

// CheckOutDate returns the calendar date of the rental's check-out day.
func (r Rent) CheckOutDate() string {
	return FormatDate(DateFromDay(r.Year, r.CheckOut))
}

// RenterShort returns the renter address truncated for table display.
func (r Rent) RenterShort() string {
	return ShortAddress(r.Renter, 12)
}

// ActiveRooms filters rooms down to the ones open for rental, preserving order.
func ActiveRooms(rooms []Room) []Room {
	var active []Room
	for _, r := range rooms {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

// ShortAddress truncates a hex address to n characters plus an ellipsis.
func ShortAddress(addr common.Address, n int) string {
	hex := addr.Hex()
	if n <= 0 || n >= len(hex) {
		return hex
	}
	return hex[:n] + "..."
}
