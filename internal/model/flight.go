package model

// Flight represents a bookable flight in the inventory catalog.
// The ID is assigned by the administrator when the flight is
// created and never changes afterwards; every other field may be
// edited later.  TotalSeats is the raw physical capacity; the
// number of seats actually free at any moment is derived from the
// reservation ledger and is never stored here.
//
// Fields:
//  ID            - administrator-assigned flight number (unique).
//  Origin        - departure city or airport.
//  Destination   - arrival city or airport.
//  DepartureTime - scheduled departure, free-form display string.
//  ArrivalTime   - scheduled arrival, free-form display string.
//  TotalSeats    - physical seat capacity, never negative.
type Flight struct {
	ID            uint64 `json:"id"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	TotalSeats    int    `json:"total_seats"`
}
