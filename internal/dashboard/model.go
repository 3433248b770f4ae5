package dashboard

import (
	"encoding/json"

	"github.com/cargorental/admin-dashboard/internal/booking"
)

// RecentLimit is the number of bookings shown under "Recent Bookings".
const RecentLimit = 10

// Summary is the backend's dashboard payload. Only the lengths of the rentee,
// owner and car arrays are shown, so their elements are left undecoded.
type Summary struct {
	Rentees  []json.RawMessage `json:"rentee"`
	Owners   []json.RawMessage `json:"owner"`
	Cars     []json.RawMessage `json:"cars"`
	Bookings []booking.Booking `json:"bookings"`
}

// Counts holds the four headline numbers.
type Counts struct {
	Rentees  int `json:"rentees"`
	Owners   int `json:"owners"`
	Cars     int `json:"cars"`
	Bookings int `json:"bookings"`
}

func (s *Summary) Counts() Counts {
	return Counts{
		Rentees:  len(s.Rentees),
		Owners:   len(s.Owners),
		Cars:     len(s.Cars),
		Bookings: len(s.Bookings),
	}
}

// Recent returns the first RecentLimit bookings in backend order.
func (s *Summary) Recent() []booking.Booking {
	if len(s.Bookings) <= RecentLimit {
		return s.Bookings
	}
	return s.Bookings[:RecentLimit]
}
