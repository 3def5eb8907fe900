// Package queue defines message payloads exchanged over the message broker.
package queue

// Event actions published to the reservation.events queue.  One event
// is emitted per lifecycle step so administrators get a running feed
// of work to act on without polling the ledger.
const (
	ActionCreated         = "created"
	ActionApproved        = "approved"
	ActionRejected        = "rejected"
	ActionCancelRequested = "cancel_requested"
	ActionCancelled       = "cancelled"
)

// ReservationEvent is published whenever a reservation is admitted or
// changes status.  It carries enough information for downstream
// consumers to log or notify without querying the engine.
type ReservationEvent struct {
	Action        string `json:"action"`
	ReservationID uint64 `json:"reservation_id"`
	Owner         string `json:"owner"`
	ResourceKind  string `json:"resource_kind"`
	ResourceID    uint64 `json:"resource_id"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
