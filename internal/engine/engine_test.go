package engine_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frocha1012/travel-reservation/internal/engine"
	"github.com/frocha1012/travel-reservation/internal/model"
	"github.com/frocha1012/travel-reservation/internal/store"
)

// newTestEngine builds an engine over a file store rooted in a fresh
// temp directory and returns both, so tests can restart the engine
// against the same directory to simulate a process restart.
func newTestEngine(t *testing.T) (*engine.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	e, err := engine.New(fs)
	require.NoError(t, err)
	return e, dir
}

func reopen(t *testing.T, dir string) *engine.Engine {
	t.Helper()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	e, err := engine.New(fs)
	require.NoError(t, err)
	return e
}

func TestFlightCatalogCRUD(t *testing.T) {
	e, _ := newTestEngine(t)

	f := model.Flight{ID: 100, Origin: "LIS", Destination: "OPO", DepartureTime: "08:00", ArrivalTime: "09:00", TotalSeats: 2}
	require.NoError(t, e.CreateFlight(f))
	assert.ErrorIs(t, e.CreateFlight(f), engine.ErrDuplicateID)

	got, err := e.GetFlight(100)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	f.Destination = "FAO"
	require.NoError(t, e.UpdateFlight(f))
	got, err = e.GetFlight(100)
	require.NoError(t, err)
	assert.Equal(t, "FAO", got.Destination)

	assert.ErrorIs(t, e.UpdateFlight(model.Flight{ID: 999}), engine.ErrNotFound)
	assert.ErrorIs(t, e.DeleteFlight(999), engine.ErrNotFound)

	require.NoError(t, e.DeleteFlight(100))
	_, err = e.GetFlight(100)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestCatalogListInsertionOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, id := range []uint64{30, 10, 20} {
		require.NoError(t, e.CreateFlight(model.Flight{ID: id, TotalSeats: 1}))
		require.NoError(t, e.CreateHotel(model.Hotel{ID: id, TotalRooms: 1}))
	}
	var flightIDs, hotelIDs []uint64
	for _, f := range e.Flights() {
		flightIDs = append(flightIDs, f.ID)
	}
	for _, h := range e.Hotels() {
		hotelIDs = append(hotelIDs, h.ID)
	}
	assert.Equal(t, []uint64{30, 10, 20}, flightIDs)
	assert.Equal(t, []uint64{30, 10, 20}, hotelIDs)

	// Deleting from the middle keeps the remaining order.
	require.NoError(t, e.DeleteFlight(10))
	flightIDs = flightIDs[:0]
	for _, f := range e.Flights() {
		flightIDs = append(flightIDs, f.ID)
	}
	assert.Equal(t, []uint64{30, 20}, flightIDs)
}

func TestAvailabilityUnknownResourceIsZero(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, 0, e.AvailableSeats(42))
	assert.Equal(t, 0, e.AvailableRooms(42))
}

func TestAvailabilityIdempotentRead(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 5}))
	_, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)
	first := e.AvailableSeats(1)
	assert.Equal(t, first, e.AvailableSeats(1))
	assert.Equal(t, 4, first)
}

// Scenario: a single-seat flight admits exactly one reservation.
func TestAdmissionRefusesOverbooking(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 100, Origin: "LIS", Destination: "MAD", TotalSeats: 1}))

	rec, err := e.RequestReservation("alice", model.KindFlight, 100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.ID, uint64(1000))
	assert.Equal(t, model.StatusPending, rec.Status)

	_, err = e.RequestReservation("bob", model.KindFlight, 100)
	assert.ErrorIs(t, err, engine.ErrInsufficientCapacity)

	_, err = e.RequestReservation("bob", model.KindFlight, 101)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestAdmissionNeverExceedsCapacity(t *testing.T) {
	const seats = 7
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: seats}))

	admitted := 0
	for i := 0; i < seats*3; i++ {
		_, err := e.RequestReservation(fmt.Sprintf("user%d", i), model.KindFlight, 1)
		if err == nil {
			admitted++
			continue
		}
		assert.ErrorIs(t, err, engine.ErrInsufficientCapacity)
	}
	assert.Equal(t, seats, admitted)

	active := 0
	for _, r := range e.Reservations() {
		if r.Status == model.StatusPending || r.Status == model.StatusApproved {
			active++
		}
	}
	assert.Equal(t, seats, active)
}

func TestConcurrentAdmissionSingleResource(t *testing.T) {
	const seats = 5
	const callers = 40
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateHotel(model.Hotel{ID: 9, Name: "Grand", TotalRooms: seats}))

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.RequestReservation(fmt.Sprintf("user%d", i), model.KindHotel, 9)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, engine.ErrInsufficientCapacity)
		}
	}
	assert.Equal(t, seats, admitted)
	assert.Equal(t, 0, e.AvailableRooms(9))
}

func TestLifecycleStateMachine(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 10}))
	rec, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)

	// Pending allows approve; re-approving fails.
	got, err := e.Approve(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	_, err = e.Approve(rec.ID)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)

	// Approved reservations cannot be rejected.
	_, err = e.Reject(rec.ID)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)

	// Owner requests cancellation; wrong owner is refused.
	_, err = e.RequestCancellation(rec.ID, "bob")
	assert.ErrorIs(t, err, engine.ErrNotAuthorized)
	got, err = e.RequestCancellation(rec.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelRequested, got.Status)

	// A second cancellation request is an invalid transition now.
	_, err = e.RequestCancellation(rec.ID, "alice")
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)

	// Deny puts it back to Approved, then the cycle can repeat.
	got, err = e.DenyCancellation(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	_, err = e.RequestCancellation(rec.ID, "alice")
	require.NoError(t, err)
	got, err = e.ConfirmCancellation(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)
}

func TestTerminalStatesRefuseEverything(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 10}))

	rejected, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)
	_, err = e.Reject(rejected.ID)
	require.NoError(t, err)

	cancelled, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)
	_, err = e.Approve(cancelled.ID)
	require.NoError(t, err)
	_, err = e.RequestCancellation(cancelled.ID, "alice")
	require.NoError(t, err)
	_, err = e.ConfirmCancellation(cancelled.ID)
	require.NoError(t, err)

	for _, id := range []uint64{rejected.ID, cancelled.ID} {
		_, err = e.Approve(id)
		assert.ErrorIs(t, err, engine.ErrInvalidTransition)
		_, err = e.Reject(id)
		assert.ErrorIs(t, err, engine.ErrInvalidTransition)
		_, err = e.RequestCancellation(id, "alice")
		assert.ErrorIs(t, err, engine.ErrInvalidTransition)
		_, err = e.ConfirmCancellation(id)
		assert.ErrorIs(t, err, engine.ErrInvalidTransition)
		_, err = e.DenyCancellation(id)
		assert.ErrorIs(t, err, engine.ErrInvalidTransition)
	}
}

func TestCancellationFreesCapacity(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 2}))

	rec, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)
	_, err = e.Approve(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, e.AvailableSeats(1))

	_, err = e.RequestCancellation(rec.ID, "alice")
	require.NoError(t, err)

	_, err = e.ConfirmCancellation(rec.ID)
	require.NoError(t, err)
	// Capacity rises by one relative to when the record was Approved.
	assert.Equal(t, 2, e.AvailableSeats(1))
}

func TestRejectionFreesCapacity(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateHotel(model.Hotel{ID: 1, TotalRooms: 1}))
	rec, err := e.RequestReservation("alice", model.KindHotel, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, e.AvailableRooms(1))
	_, err = e.Reject(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, e.AvailableRooms(1))
}

func TestCapacityEditBelowActiveReads(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 3}))
	for i := 0; i < 3; i++ {
		rec, err := e.RequestReservation(fmt.Sprintf("user%d", i), model.KindFlight, 1)
		require.NoError(t, err)
		_, err = e.Approve(rec.ID)
		require.NoError(t, err)
	}

	// An administrative edit may reduce capacity below the approved
	// count.  Display clamps to zero; admission stays refused.
	require.NoError(t, e.UpdateFlight(model.Flight{ID: 1, TotalSeats: 1}))
	assert.Equal(t, 0, e.AvailableSeats(1))
	_, err := e.RequestReservation("late", model.KindFlight, 1)
	assert.ErrorIs(t, err, engine.ErrInsufficientCapacity)
}

func TestDeletedResourceKeepsHistoryShowsZeroCapacity(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 5}))
	rec, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)

	require.NoError(t, e.DeleteFlight(1))

	// The record survives the delete, and capacity math treats the
	// missing flight as zero.
	got, err := e.GetReservation(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, 0, e.AvailableSeats(1))
	_, err = e.RequestReservation("bob", model.KindFlight, 1)
	assert.ErrorIs(t, err, engine.ErrNotFound)

	// Status transitions still work on the dangling record.
	_, err = e.Approve(rec.ID)
	require.NoError(t, err)
}

func TestReservationIDsStrictlyIncreaseAcrossRestart(t *testing.T) {
	e, dir := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 100}))

	var ids []uint64
	for i := 0; i < 5; i++ {
		rec, err := e.RequestReservation("alice", model.KindFlight, 1)
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}

	// Simulated restart: a fresh engine over the same directory keeps
	// counting from the persisted value.
	e2 := reopen(t, dir)
	rec, err := e2.RequestReservation("bob", model.KindFlight, 1)
	require.NoError(t, err)
	assert.Greater(t, rec.ID, ids[len(ids)-1])
}

func TestStateSurvivesRestart(t *testing.T) {
	e, dir := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 7, Origin: "LIS", Destination: "PAR", TotalSeats: 2}))
	require.NoError(t, e.CreateHotel(model.Hotel{ID: 3, Name: "Ritz", Location: "Paris", TotalRooms: 4}))
	rec, err := e.RequestReservation("alice", model.KindFlight, 7)
	require.NoError(t, err)
	_, err = e.Approve(rec.ID)
	require.NoError(t, err)

	e2 := reopen(t, dir)
	got, err := e2.GetReservation(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, 1, e2.AvailableSeats(7))
	assert.Equal(t, 4, e2.AvailableRooms(3))

	flights := e2.Flights()
	require.Len(t, flights, 1)
	assert.Equal(t, "PAR", flights[0].Destination)
}

func TestLedgerFilters(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 10}))

	a, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)
	b, err := e.RequestReservation("bob", model.KindFlight, 1)
	require.NoError(t, err)
	c, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)

	_, err = e.Approve(b.ID)
	require.NoError(t, err)

	pending := e.ReservationsByStatus(model.StatusPending)
	require.Len(t, pending, 2)
	assert.Equal(t, a.ID, pending[0].ID)
	assert.Equal(t, c.ID, pending[1].ID)

	mine := e.ReservationsByOwner("alice")
	require.Len(t, mine, 2)
	assert.Equal(t, a.ID, mine[0].ID)
	assert.Equal(t, c.ID, mine[1].ID)
}

// flakyStore wraps a real store and fails reservation writes on
// demand, so tests can observe the engine's rollback behaviour.
type flakyStore struct {
	engine.Store
	failReservations bool
	failLastID       bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) StoreReservations(recs []model.Reservation) error {
	if f.failReservations {
		return errDiskFull
	}
	return f.Store.StoreReservations(recs)
}

func (f *flakyStore) StoreLastReservationID(id uint64) error {
	if f.failLastID {
		return errDiskFull
	}
	return f.Store.StoreLastReservationID(id)
}

func TestPersistenceFailureRollsBackAdmission(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	flaky := &flakyStore{Store: fs}
	e, err := engine.New(flaky)
	require.NoError(t, err)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 1}))

	flaky.failReservations = true
	_, err = e.RequestReservation("alice", model.KindFlight, 1)
	assert.ErrorIs(t, err, engine.ErrPersistence)

	// The failed admission must not occupy the seat.
	flaky.failReservations = false
	rec, err := e.RequestReservation("bob", model.KindFlight, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", rec.Owner)
	assert.Empty(t, e.ReservationsByOwner("alice"))
}

func TestPersistenceFailureRollsBackTransition(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	flaky := &flakyStore{Store: fs}
	e, err := engine.New(flaky)
	require.NoError(t, err)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 1}))
	rec, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)

	flaky.failReservations = true
	_, err = e.Approve(rec.ID)
	assert.ErrorIs(t, err, engine.ErrPersistence)

	got, err := e.GetReservation(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestIDAllocationFailureAdmitsNothing(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	flaky := &flakyStore{Store: fs}
	e, err := engine.New(flaky)
	require.NoError(t, err)
	require.NoError(t, e.CreateFlight(model.Flight{ID: 1, TotalSeats: 1}))

	flaky.failLastID = true
	_, err = e.RequestReservation("alice", model.KindFlight, 1)
	assert.ErrorIs(t, err, engine.ErrPersistence)
	assert.Empty(t, e.Reservations())

	// Once the store recovers the same seat is still available and the
	// id sequence continues without a gap from the failed call.
	flaky.failLastID = false
	rec, err := e.RequestReservation("alice", model.KindFlight, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), rec.ID)
}
