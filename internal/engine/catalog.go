package engine

import "github.com/frocha1012/travel-reservation/internal/model"

// FlightCatalog holds the mutable set of flights keyed by their
// administrator-assigned id.  An insertion-order slice of ids sits
// beside the map so listings come back in the order flights were
// added, matching what administrators expect from the catalog they
// built up.  The catalog knows nothing about reservations.
//
// The catalog is not safe for concurrent use on its own; the engine
// serializes access with its lock.
type FlightCatalog struct {
	byID  map[uint64]model.Flight
	order []uint64
}

// NewFlightCatalog returns an empty catalog.
func NewFlightCatalog() *FlightCatalog {
	return &FlightCatalog{byID: make(map[uint64]model.Flight)}
}

// Create inserts a new flight.  It returns ErrDuplicateID when a
// flight with the same id already exists.
func (cat *FlightCatalog) Create(f model.Flight) error {
	if _, ok := cat.byID[f.ID]; ok {
		return ErrDuplicateID
	}
	cat.byID[f.ID] = f
	cat.order = append(cat.order, f.ID)
	return nil
}

// Get returns the flight with the given id or ErrNotFound.
func (cat *FlightCatalog) Get(id uint64) (model.Flight, error) {
	f, ok := cat.byID[id]
	if !ok {
		return model.Flight{}, ErrNotFound
	}
	return f, nil
}

// Update overwrites the mutable fields of an existing flight.  The id
// on the incoming record selects the flight and cannot change.
func (cat *FlightCatalog) Update(f model.Flight) error {
	if _, ok := cat.byID[f.ID]; !ok {
		return ErrNotFound
	}
	cat.byID[f.ID] = f
	return nil
}

// Delete removes a flight from the catalog.  The ledger is untouched:
// reservations referencing a deleted flight remain and simply derive
// zero capacity from then on.
func (cat *FlightCatalog) Delete(id uint64) error {
	if _, ok := cat.byID[id]; !ok {
		return ErrNotFound
	}
	delete(cat.byID, id)
	for i, v := range cat.order {
		if v == id {
			cat.order = append(cat.order[:i], cat.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a fresh snapshot of all flights in insertion order.
// Each call re-enumerates the current set, so a caller holding a slice
// from an earlier call simply has an older snapshot.
func (cat *FlightCatalog) List() []model.Flight {
	out := make([]model.Flight, 0, len(cat.order))
	for _, id := range cat.order {
		out = append(out, cat.byID[id])
	}
	return out
}

// Len returns the number of flights currently in the catalog.
func (cat *FlightCatalog) Len() int { return len(cat.byID) }

// HotelCatalog is the hotel counterpart of FlightCatalog with the same
// insertion-order and mutation rules.
type HotelCatalog struct {
	byID  map[uint64]model.Hotel
	order []uint64
}

// NewHotelCatalog returns an empty catalog.
func NewHotelCatalog() *HotelCatalog {
	return &HotelCatalog{byID: make(map[uint64]model.Hotel)}
}

// Create inserts a new hotel or returns ErrDuplicateID.
func (cat *HotelCatalog) Create(h model.Hotel) error {
	if _, ok := cat.byID[h.ID]; ok {
		return ErrDuplicateID
	}
	cat.byID[h.ID] = h
	cat.order = append(cat.order, h.ID)
	return nil
}

// Get returns the hotel with the given id or ErrNotFound.
func (cat *HotelCatalog) Get(id uint64) (model.Hotel, error) {
	h, ok := cat.byID[id]
	if !ok {
		return model.Hotel{}, ErrNotFound
	}
	return h, nil
}

// Update overwrites the mutable fields of an existing hotel.
func (cat *HotelCatalog) Update(h model.Hotel) error {
	if _, ok := cat.byID[h.ID]; !ok {
		return ErrNotFound
	}
	cat.byID[h.ID] = h
	return nil
}

// Delete removes a hotel; no effect on the ledger.
func (cat *HotelCatalog) Delete(id uint64) error {
	if _, ok := cat.byID[id]; !ok {
		return ErrNotFound
	}
	delete(cat.byID, id)
	for i, v := range cat.order {
		if v == id {
			cat.order = append(cat.order[:i], cat.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a fresh snapshot of all hotels in insertion order.
func (cat *HotelCatalog) List() []model.Hotel {
	out := make([]model.Hotel, 0, len(cat.order))
	for _, id := range cat.order {
		out = append(out, cat.byID[id])
	}
	return out
}

// Len returns the number of hotels currently in the catalog.
func (cat *HotelCatalog) Len() int { return len(cat.byID) }
