package engine

import "github.com/frocha1012/travel-reservation/internal/model"

// Capacity derivation.  Remaining capacity is always recomputed from
// the catalog total and the ledger. There is no stored seat counter
// to decrement, so the counter can never drift from the ledger.  The
// unclamped value gates admission: if an administrator edits a flight
// down below the number of already-active reservations, the deficit is
// visible as capacity <= 0 instead of wrapping around.

// availableSeats returns the unclamped remaining seat count for a
// flight, and false when the flight does not exist.  Callers holding
// the engine lock use this for admission decisions.
func (e *Engine) availableSeats(flightID uint64) (int, bool) {
	f, err := e.flights.Get(flightID)
	if err != nil {
		return 0, false
	}
	return f.TotalSeats - e.ledger.countActive(model.KindFlight, flightID), true
}

// availableRooms is the hotel counterpart of availableSeats.
func (e *Engine) availableRooms(hotelID uint64) (int, bool) {
	h, err := e.hotels.Get(hotelID)
	if err != nil {
		return 0, false
	}
	return h.TotalRooms - e.ledger.countActive(model.KindHotel, hotelID), true
}

// AvailableSeats returns the number of seats still open on a flight,
// clamped to zero for display.  A flight id that does not exist
// reports zero availability rather than an error, so listings can
// treat missing and fully booked resources the same way.
func (e *Engine) AvailableSeats(flightID uint64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.availableSeats(flightID)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// AvailableRooms returns the number of rooms still open at a hotel,
// clamped to zero.  Zero for unknown hotel ids.
func (e *Engine) AvailableRooms(hotelID uint64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.availableRooms(hotelID)
	if !ok || n < 0 {
		return 0
	}
	return n
}
