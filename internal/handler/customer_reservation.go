package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/engine"
	"github.com/frocha1012/travel-reservation/internal/model"
	"github.com/frocha1012/travel-reservation/internal/queue"
	queue_publisher "github.com/frocha1012/travel-reservation/internal/service"
)

// CustomerHandler exposes the reservation operations available to
// authenticated customers: booking a flight or hotel, listing their
// own reservations and requesting cancellation of an approved one.
// The handler trusts the username injected by the JWT middleware as
// the reservation owner; the engine performs no credential checks.
type CustomerHandler struct {
	Engine *engine.Engine
}

func NewCustomerHandler(e *engine.Engine) *CustomerHandler {
	return &CustomerHandler{Engine: e}
}

type createReservationReq struct {
	Kind       string `json:"kind"` // FLIGHT | HOTEL
	ResourceID uint64 `json:"resource_id"`
}

// CreateReservation handles POST /v1/reservations.  Admission control
// lives entirely in the engine: the capacity check, id allocation and
// Pending append happen atomically there, so two concurrent requests
// for the last seat cannot both succeed.  On success a created event
// is published for the admin notification feed; a broker outage is
// logged and ignored since the ledger is the source of truth.
func (h *CustomerHandler) CreateReservation(c echo.Context) error {
	owner := username(c)
	if owner == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	kind := model.ResourceKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be FLIGHT or HOTEL"})
	}
	if req.ResourceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource_id is required"})
	}

	rec, err := h.Engine.RequestReservation(owner, kind, req.ResourceID)
	if err != nil {
		return engineError(c, err)
	}
	publishEvent(c, queue.ActionCreated, rec)
	return c.JSON(http.StatusCreated, rec)
}

// MyReservations handles GET /v1/reservations and lists the calling
// user's records in the order they were made.
func (h *CustomerHandler) MyReservations(c echo.Context) error {
	owner := username(c)
	if owner == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": h.Engine.ReservationsByOwner(owner)})
}

// RequestCancellation handles POST /v1/reservations/:id/cancel.  Only
// the owner of an Approved reservation may ask for cancellation; the
// final decision stays with an administrator.
func (h *CustomerHandler) RequestCancellation(c echo.Context) error {
	owner := username(c)
	if owner == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	rec, err := h.Engine.RequestCancellation(id, owner)
	if err != nil {
		return engineError(c, err)
	}
	publishEvent(c, queue.ActionCancelRequested, rec)
	return c.JSON(http.StatusOK, rec)
}

// publishEvent emits a reservation lifecycle event, logging and
// swallowing broker errors.
func publishEvent(c echo.Context, action string, rec model.Reservation) {
	ev := queue.ReservationEvent{
		Action:        action,
		ReservationID: rec.ID,
		Owner:         rec.Owner,
		ResourceKind:  string(rec.Kind),
		ResourceID:    rec.ResourceID,
		Status:        string(rec.Status),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishReservationEvent(c.Request().Context(), ev); err != nil {
		log.Printf("reservation event publish failed (ignored): %v", err)
	}
}
