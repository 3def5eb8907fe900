package model

// Hotel represents a bookable hotel in the inventory catalog.
// Like Flight, the ID is chosen by the administrator at creation
// time and is immutable; name, location and room count may be
// edited.  TotalRooms is raw capacity; availability is always
// recomputed from the ledger.
//
// Fields:
//  ID         - administrator-assigned hotel identifier (unique).
//  Name       - hotel name.
//  Location   - city or address.
//  TotalRooms - physical room capacity, never negative.
type Hotel struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	TotalRooms int    `json:"total_rooms"`
}
