package engine

// idFloor is where reservation ids start when no prior value has ever
// been persisted.  The first id handed out is idFloor+1.
const idFloor = 1000

// idAllocator issues reservation ids that strictly increase across the
// lifetime of the ledger, including process restarts.  The last issued
// value is written through the store before the new id is returned, so
// a crash after issuance can skip ids but never repeat one.
type idAllocator struct {
	last  uint64
	store Store
}

// newIDAllocator loads the last persisted id and clamps it to the
// floor.  A store with no prior value must report zero, not an error.
func newIDAllocator(store Store) (*idAllocator, error) {
	last, err := store.LoadLastReservationID()
	if err != nil {
		return nil, persistErr("load last reservation id", err)
	}
	if last < idFloor {
		last = idFloor
	}
	return &idAllocator{last: last, store: store}, nil
}

// next returns a fresh id strictly greater than every id returned
// before it.  The value is durable before it is handed out: if the
// store write fails, no id is issued and the counter is unchanged.
func (a *idAllocator) next() (uint64, error) {
	n := a.last + 1
	if err := a.store.StoreLastReservationID(n); err != nil {
		return 0, persistErr("store last reservation id", err)
	}
	a.last = n
	return n, nil
}
