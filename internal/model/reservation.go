package model

import "time"

// ReservationStatus enumerates the states a reservation moves
// through.  The allowed transitions are:
//
//	Pending  -> Approved | Rejected
//	Approved -> CancelRequested
//	CancelRequested -> Cancelled | Approved
//
// Rejected and Cancelled are terminal.  Only Pending and Approved
// reservations consume capacity.
type ReservationStatus string

const (
	StatusPending         ReservationStatus = "PENDING"
	StatusApproved        ReservationStatus = "APPROVED"
	StatusRejected        ReservationStatus = "REJECTED"
	StatusCancelRequested ReservationStatus = "CANCEL_REQUESTED"
	StatusCancelled       ReservationStatus = "CANCELLED"
)

// Valid reports whether s is one of the five known statuses.  It is
// used when loading a ledger from disk to reject corrupt records.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelRequested, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// ResourceKind distinguishes what kind of inventory a reservation
// points at.
type ResourceKind string

const (
	KindFlight ResourceKind = "FLIGHT"
	KindHotel  ResourceKind = "HOTEL"
)

// Valid reports whether k is a known resource kind.
func (k ResourceKind) Valid() bool {
	return k == KindFlight || k == KindHotel
}

// Reservation records one booking by one user against one inventory
// resource.  Records are never deleted: cancellation and rejection
// are terminal statuses, which keeps the full history auditable.
// After creation only the Status field ever changes.
//
// Fields:
//  ID         - system-assigned identifier, unique and strictly
//               increasing across the lifetime of the ledger,
//               including process restarts.
//  Owner      - username of the customer who made the booking.
//  Kind       - FLIGHT or HOTEL.
//  ResourceID - id of the flight or hotel being booked.  The
//               resource may be deleted later; the record stays
//               and simply shows no future capacity.
//  Status     - current lifecycle state.
//  CreatedAt  - when the reservation was admitted.
type Reservation struct {
	ID         uint64            `json:"id"`
	Owner      string            `json:"owner"`
	Kind       ResourceKind      `json:"kind"`
	ResourceID uint64            `json:"resource_id"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
