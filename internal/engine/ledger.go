package engine

import "github.com/frocha1012/travel-reservation/internal/model"

// Ledger is the append-mostly store of every reservation ever made.
// Records are kept in a map for O(1) lookup with an insertion-order id
// slice beside it, so filtered listings come back in the order the
// reservations were admitted.  The ledger never deletes a record:
// rejection and cancellation are terminal statuses, not removals,
// which keeps the whole history auditable.
//
// Like the catalogs, the ledger relies on the engine's lock for
// concurrent access.
type Ledger struct {
	byID  map[uint64]model.Reservation
	order []uint64
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[uint64]model.Reservation)}
}

// Append inserts a new reservation record.  The id must have been
// allocated by the id allocator, so a collision should be impossible;
// the ErrDuplicateID check is purely defensive.
func (l *Ledger) Append(r model.Reservation) error {
	if _, ok := l.byID[r.ID]; ok {
		return ErrDuplicateID
	}
	l.byID[r.ID] = r
	l.order = append(l.order, r.ID)
	return nil
}

// dropLast removes the most recently appended record.  It exists only
// so the engine can roll back an admission whose persistence flush
// failed, and must be called with the same id Append just inserted.
func (l *Ledger) dropLast(id uint64) {
	if len(l.order) == 0 || l.order[len(l.order)-1] != id {
		return
	}
	delete(l.byID, id)
	l.order = l.order[:len(l.order)-1]
}

// Get returns the reservation with the given id or ErrNotFound.
func (l *Ledger) Get(id uint64) (model.Reservation, error) {
	r, ok := l.byID[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}
	return r, nil
}

// SetStatus overwrites the status of an existing record.  All other
// fields are immutable after creation.
func (l *Ledger) SetStatus(id uint64, s model.ReservationStatus) error {
	r, ok := l.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = s
	l.byID[id] = r
	return nil
}

// List returns a snapshot of every record in insertion order.
func (l *Ledger) List() []model.Reservation {
	out := make([]model.Reservation, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// FilterByStatus returns records with the given status, insertion order.
func (l *Ledger) FilterByStatus(s model.ReservationStatus) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, id := range l.order {
		if r := l.byID[id]; r.Status == s {
			out = append(out, r)
		}
	}
	return out
}

// FilterByOwner returns records owned by the given username, insertion order.
func (l *Ledger) FilterByOwner(username string) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, id := range l.order {
		if r := l.byID[id]; r.Owner == username {
			out = append(out, r)
		}
	}
	return out
}

// countActive counts Pending and Approved records against one
// resource.  These are the two statuses that consume capacity.
func (l *Ledger) countActive(kind model.ResourceKind, resourceID uint64) int {
	n := 0
	for _, id := range l.order {
		r := l.byID[id]
		if r.Kind == kind && r.ResourceID == resourceID &&
			(r.Status == model.StatusPending || r.Status == model.StatusApproved) {
			n++
		}
	}
	return n
}

// Len returns the total number of records in the ledger.
func (l *Ledger) Len() int { return len(l.byID) }
