package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frocha1012/travel-reservation/internal/model"
	"github.com/frocha1012/travel-reservation/internal/store"
)

func TestFreshDirectoryLoadsEmpty(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	flights, err := s.LoadFlights()
	require.NoError(t, err)
	assert.Empty(t, flights)

	hotels, err := s.LoadHotels()
	require.NoError(t, err)
	assert.Empty(t, hotels)

	recs, err := s.LoadReservations()
	require.NoError(t, err)
	assert.Empty(t, recs)

	last, err := s.LoadLastReservationID()
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestStoreAndReloadCollections(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)

	flights := []model.Flight{
		{ID: 100, Origin: "LIS", Destination: "MAD", DepartureTime: "08:00", ArrivalTime: "09:10", TotalSeats: 120},
		{ID: 200, Origin: "OPO", Destination: "PAR", DepartureTime: "14:30", ArrivalTime: "17:55", TotalSeats: 0},
	}
	hotels := []model.Hotel{{ID: 5, Name: "Mar Azul", Location: "Faro", TotalRooms: 40}}
	recs := []model.Reservation{
		{ID: 1001, Owner: "alice", Kind: model.KindFlight, ResourceID: 100, Status: model.StatusApproved, CreatedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 1002, Owner: "bob", Kind: model.KindHotel, ResourceID: 5, Status: model.StatusPending, CreatedAt: time.Date(2026, 5, 2, 11, 0, 0, 0, time.UTC)},
	}

	require.NoError(t, s.StoreFlights(flights))
	require.NoError(t, s.StoreHotels(hotels))
	require.NoError(t, s.StoreReservations(recs))
	require.NoError(t, s.StoreLastReservationID(1002))

	// A second store over the same directory sees everything, in order.
	s2, err := store.NewFileStore(dir)
	require.NoError(t, err)

	gotFlights, err := s2.LoadFlights()
	require.NoError(t, err)
	assert.Equal(t, flights, gotFlights)

	gotHotels, err := s2.LoadHotels()
	require.NoError(t, err)
	assert.Equal(t, hotels, gotHotels)

	gotRecs, err := s2.LoadReservations()
	require.NoError(t, err)
	assert.Equal(t, recs, gotRecs)

	last, err := s2.LoadLastReservationID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1002), last)
}

func TestStoreReplacesPreviousSnapshot(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.StoreFlights([]model.Flight{{ID: 1}, {ID: 2}}))
	require.NoError(t, s.StoreFlights([]model.Flight{{ID: 3}}))

	got, err := s.LoadFlights()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(3), got[0].ID)
}

func TestHeaderMismatchIsRejected(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)

	// A hotels file renamed to flights.jsonl must not load as flights.
	require.NoError(t, s.StoreHotels([]model.Hotel{{ID: 1, Name: "X"}}))
	data, err := os.ReadFile(filepath.Join(dir, "hotels.jsonl"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flights.jsonl"), data, 0o644))

	_, err = s.LoadFlights()
	assert.Error(t, err)
}

func TestCorruptRecordReportsLine(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.StoreFlights([]model.Flight{{ID: 1}}))

	path := filepath.Join(dir, "flights.jsonl")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, []byte("{not json\n")...), 0o644))

	_, err = s.LoadFlights()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLastIDRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.StoreLastReservationID(1500))
	require.NoError(t, s.StoreLastReservationID(1501))

	got, err := s.LoadLastReservationID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1501), got)
}
