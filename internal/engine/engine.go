package engine

import (
	"sync"
	"time"

	"github.com/frocha1012/travel-reservation/internal/model"
)

// Store is the persistence collaborator the engine flushes through.
// Load methods are called once at startup to populate the in-memory
// working set and must return empty results, not an error, when
// nothing has been persisted yet.  Store methods receive a full
// snapshot of the relevant collection and are called synchronously
// after every state-changing operation.
type Store interface {
	LoadFlights() ([]model.Flight, error)
	StoreFlights([]model.Flight) error
	LoadHotels() ([]model.Hotel, error)
	StoreHotels([]model.Hotel) error
	LoadReservations() ([]model.Reservation, error)
	StoreReservations([]model.Reservation) error
	LoadLastReservationID() (uint64, error)
	StoreLastReservationID(uint64) error
}

// Engine owns the catalogs, the ledger and the id allocator and is the
// only component allowed to mutate them.  A single mutex serializes
// every operation, which makes the check-capacity-then-append sequence
// in RequestReservation atomic with respect to concurrent requests.
// Expected load is interactive sessions, so one lock is plenty; the
// win is that two concurrent requests for the last seat can never both
// be admitted.
//
// Mutations follow a flush-or-rollback rule: the in-memory change is
// applied, the affected collection is flushed through the Store, and
// if the flush fails the change is reverted and the operation reports
// ErrPersistence.  The one asymmetry is admission: an id persisted by
// the allocator before a failed ledger flush stays burned, so ids may
// skip but never repeat.
type Engine struct {
	mu      sync.Mutex
	flights *FlightCatalog
	hotels  *HotelCatalog
	ledger  *Ledger
	alloc   *idAllocator
	store   Store
	now     func() time.Time
}

// New builds an engine on top of the given store, loading all
// persisted state into memory.  Records with unknown statuses or
// kinds are rejected outright rather than silently skipped: a ledger
// that fails validation means the data files were edited by hand.
func New(store Store) (*Engine, error) {
	e := &Engine{
		flights: NewFlightCatalog(),
		hotels:  NewHotelCatalog(),
		ledger:  NewLedger(),
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
	}

	flights, err := store.LoadFlights()
	if err != nil {
		return nil, persistErr("load flights", err)
	}
	for _, f := range flights {
		if err := e.flights.Create(f); err != nil {
			return nil, err
		}
	}

	hotels, err := store.LoadHotels()
	if err != nil {
		return nil, persistErr("load hotels", err)
	}
	for _, h := range hotels {
		if err := e.hotels.Create(h); err != nil {
			return nil, err
		}
	}

	recs, err := store.LoadReservations()
	if err != nil {
		return nil, persistErr("load reservations", err)
	}
	for _, r := range recs {
		if !r.Status.Valid() || !r.Kind.Valid() {
			return nil, ErrInvalidTransition
		}
		if err := e.ledger.Append(r); err != nil {
			return nil, err
		}
	}

	e.alloc, err = newIDAllocator(store)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Flush writes every collection through the store.  It is called on
// shutdown so that a clean exit leaves the files consistent even if an
// individual flush failed earlier.
func (e *Engine) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.StoreFlights(e.flights.List()); err != nil {
		return persistErr("store flights", err)
	}
	if err := e.store.StoreHotels(e.hotels.List()); err != nil {
		return persistErr("store hotels", err)
	}
	if err := e.store.StoreReservations(e.ledger.List()); err != nil {
		return persistErr("store reservations", err)
	}
	return nil
}

// ----- Flight catalog operations -----

// CreateFlight adds a flight to the catalog.
func (e *Engine) CreateFlight(f model.Flight) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.flights.Create(f); err != nil {
		return err
	}
	if err := e.store.StoreFlights(e.flights.List()); err != nil {
		_ = e.flights.Delete(f.ID)
		return persistErr("store flights", err)
	}
	return nil
}

// UpdateFlight overwrites the mutable fields of an existing flight.
// Reducing TotalSeats below the active reservation count is allowed;
// the deficit shows up as zero availability, it is never hidden.
func (e *Engine) UpdateFlight(f model.Flight) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, err := e.flights.Get(f.ID)
	if err != nil {
		return err
	}
	if err := e.flights.Update(f); err != nil {
		return err
	}
	if err := e.store.StoreFlights(e.flights.List()); err != nil {
		_ = e.flights.Update(prev)
		return persistErr("store flights", err)
	}
	return nil
}

// DeleteFlight removes a flight.  Historical reservations referencing
// it are kept untouched.
func (e *Engine) DeleteFlight(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, err := e.flights.Get(id)
	if err != nil {
		return err
	}
	if err := e.flights.Delete(id); err != nil {
		return err
	}
	if err := e.store.StoreFlights(e.flights.List()); err != nil {
		_ = e.flights.Create(prev)
		return persistErr("store flights", err)
	}
	return nil
}

// GetFlight returns one flight by id.
func (e *Engine) GetFlight(id uint64) (model.Flight, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flights.Get(id)
}

// Flights returns all flights in insertion order.
func (e *Engine) Flights() []model.Flight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flights.List()
}

// ----- Hotel catalog operations -----

// CreateHotel adds a hotel to the catalog.
func (e *Engine) CreateHotel(h model.Hotel) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.hotels.Create(h); err != nil {
		return err
	}
	if err := e.store.StoreHotels(e.hotels.List()); err != nil {
		_ = e.hotels.Delete(h.ID)
		return persistErr("store hotels", err)
	}
	return nil
}

// UpdateHotel overwrites the mutable fields of an existing hotel.
func (e *Engine) UpdateHotel(h model.Hotel) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, err := e.hotels.Get(h.ID)
	if err != nil {
		return err
	}
	if err := e.hotels.Update(h); err != nil {
		return err
	}
	if err := e.store.StoreHotels(e.hotels.List()); err != nil {
		_ = e.hotels.Update(prev)
		return persistErr("store hotels", err)
	}
	return nil
}

// DeleteHotel removes a hotel; the ledger is untouched.
func (e *Engine) DeleteHotel(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, err := e.hotels.Get(id)
	if err != nil {
		return err
	}
	if err := e.hotels.Delete(id); err != nil {
		return err
	}
	if err := e.store.StoreHotels(e.hotels.List()); err != nil {
		_ = e.hotels.Create(prev)
		return persistErr("store hotels", err)
	}
	return nil
}

// GetHotel returns one hotel by id.
func (e *Engine) GetHotel(id uint64) (model.Hotel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hotels.Get(id)
}

// Hotels returns all hotels in insertion order.
func (e *Engine) Hotels() []model.Hotel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hotels.List()
}

// ----- Reservation lifecycle -----

// RequestReservation is the engine's single admission-control point.
// Under the engine lock it checks remaining capacity, allocates a
// durable id and appends a Pending record, so two concurrent requests
// for the same last seat cannot both get in.  It returns the new
// reservation on success, ErrNotFound for an unknown resource and
// ErrInsufficientCapacity when nothing is left.
func (e *Engine) RequestReservation(username string, kind model.ResourceKind, resourceID uint64) (model.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var remaining int
	var ok bool
	switch kind {
	case model.KindFlight:
		remaining, ok = e.availableSeats(resourceID)
	case model.KindHotel:
		remaining, ok = e.availableRooms(resourceID)
	default:
		return model.Reservation{}, ErrNotFound
	}
	if !ok {
		return model.Reservation{}, ErrNotFound
	}
	// The unclamped value gates admission: an over-capacity state
	// caused by a catalog edit reads as <= 0 here.
	if remaining <= 0 {
		return model.Reservation{}, ErrInsufficientCapacity
	}

	id, err := e.alloc.next()
	if err != nil {
		return model.Reservation{}, err
	}
	rec := model.Reservation{
		ID:         id,
		Owner:      username,
		Kind:       kind,
		ResourceID: resourceID,
		Status:     model.StatusPending,
		CreatedAt:  e.now(),
	}
	if err := e.ledger.Append(rec); err != nil {
		return model.Reservation{}, err
	}
	if err := e.store.StoreReservations(e.ledger.List()); err != nil {
		// The allocated id stays burned; ids may skip, never repeat.
		e.ledger.dropLast(id)
		return model.Reservation{}, persistErr("store reservations", err)
	}
	return rec, nil
}

// Approve moves a Pending reservation to Approved.  Capacity is not
// re-checked here: admission at request time is authoritative, and the
// only way approval can exceed capacity is a later administrative edit
// reducing the total, which is accepted as a visible over-capacity
// condition rather than silently blocked.
func (e *Engine) Approve(id uint64) (model.Reservation, error) {
	return e.transition(id, model.StatusPending, model.StatusApproved)
}

// Reject moves a Pending reservation to the terminal Rejected state.
func (e *Engine) Reject(id uint64) (model.Reservation, error) {
	return e.transition(id, model.StatusPending, model.StatusRejected)
}

// RequestCancellation lets the owner of an Approved reservation ask
// for it to be cancelled.  A non-owner gets ErrNotAuthorized; any
// status other than Approved gets ErrInvalidTransition.
func (e *Engine) RequestCancellation(id uint64, username string) (model.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := e.ledger.Get(id)
	if err != nil {
		return model.Reservation{}, err
	}
	if rec.Owner != username {
		return model.Reservation{}, ErrNotAuthorized
	}
	if rec.Status != model.StatusApproved {
		return model.Reservation{}, ErrInvalidTransition
	}
	return e.setStatusLocked(rec, model.StatusCancelRequested)
}

// ConfirmCancellation moves a CancelRequested reservation to the
// terminal Cancelled state, freeing its capacity on the next read.
func (e *Engine) ConfirmCancellation(id uint64) (model.Reservation, error) {
	return e.transition(id, model.StatusCancelRequested, model.StatusCancelled)
}

// DenyCancellation moves a CancelRequested reservation back to
// Approved; the seat or room stays consumed.
func (e *Engine) DenyCancellation(id uint64) (model.Reservation, error) {
	return e.transition(id, model.StatusCancelRequested, model.StatusApproved)
}

// transition applies a single-step status change that requires the
// record to currently be in exactly one status.
func (e *Engine) transition(id uint64, from, to model.ReservationStatus) (model.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := e.ledger.Get(id)
	if err != nil {
		return model.Reservation{}, err
	}
	if rec.Status != from {
		return model.Reservation{}, ErrInvalidTransition
	}
	return e.setStatusLocked(rec, to)
}

// setStatusLocked writes the new status through the ledger and the
// store, rolling the status back if the flush fails.  Caller holds
// the engine lock.
func (e *Engine) setStatusLocked(rec model.Reservation, to model.ReservationStatus) (model.Reservation, error) {
	prev := rec.Status
	if err := e.ledger.SetStatus(rec.ID, to); err != nil {
		return model.Reservation{}, err
	}
	if err := e.store.StoreReservations(e.ledger.List()); err != nil {
		_ = e.ledger.SetStatus(rec.ID, prev)
		return model.Reservation{}, persistErr("store reservations", err)
	}
	rec.Status = to
	return rec, nil
}

// ----- Ledger reads -----

// GetReservation returns one reservation by id.
func (e *Engine) GetReservation(id uint64) (model.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Get(id)
}

// Reservations returns every reservation in insertion order.
func (e *Engine) Reservations() []model.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.List()
}

// ReservationsByStatus returns reservations with the given status.
func (e *Engine) ReservationsByStatus(s model.ReservationStatus) []model.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.FilterByStatus(s)
}

// ReservationsByOwner returns reservations owned by the given user.
func (e *Engine) ReservationsByOwner(username string) []model.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.FilterByOwner(username)
}
