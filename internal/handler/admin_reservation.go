package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/engine"
	"github.com/frocha1012/travel-reservation/internal/model"
	"github.com/frocha1012/travel-reservation/internal/queue"
)

// AdminReservationHandler exposes the administrative side of the
// reservation workflow: reviewing the ledger, approving or rejecting
// pending reservations, ruling on cancellation requests, the
// notification summary and the plain-text report.
type AdminReservationHandler struct {
	Engine *engine.Engine
}

func NewAdminReservationHandler(e *engine.Engine) *AdminReservationHandler {
	return &AdminReservationHandler{Engine: e}
}

// ListReservations handles GET /v1/admin/reservations.  The optional
// ?status= query filters by a single status; anything unknown is a 400
// rather than an empty result, so typos don't read as "none pending".
func (h *AdminReservationHandler) ListReservations(c echo.Context) error {
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		status := model.ReservationStatus(strings.ToUpper(s))
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		return c.JSON(http.StatusOK, echo.Map{"reservations": h.Engine.ReservationsByStatus(status)})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": h.Engine.Reservations()})
}

// Notifications handles GET /v1/admin/notifications: the queue of work
// awaiting an administrator: pending reservations and cancellation
// requests.
func (h *AdminReservationHandler) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"pending":          h.Engine.ReservationsByStatus(model.StatusPending),
		"cancel_requested": h.Engine.ReservationsByStatus(model.StatusCancelRequested),
	})
}

// Approve handles POST /v1/admin/reservations/:id/approve.  The engine
// deliberately re-checks nothing about capacity here; admission at
// request time was authoritative.
func (h *AdminReservationHandler) Approve(c echo.Context) error {
	return h.decide(c, h.Engine.Approve, queue.ActionApproved)
}

// Reject handles POST /v1/admin/reservations/:id/reject.
func (h *AdminReservationHandler) Reject(c echo.Context) error {
	return h.decide(c, h.Engine.Reject, queue.ActionRejected)
}

// ConfirmCancellation handles POST /v1/admin/reservations/:id/cancellation/confirm.
func (h *AdminReservationHandler) ConfirmCancellation(c echo.Context) error {
	return h.decide(c, h.Engine.ConfirmCancellation, queue.ActionCancelled)
}

// DenyCancellation handles POST /v1/admin/reservations/:id/cancellation/deny.
// The reservation returns to Approved and keeps its seat.
func (h *AdminReservationHandler) DenyCancellation(c echo.Context) error {
	return h.decide(c, h.Engine.DenyCancellation, queue.ActionApproved)
}

// decide runs one single-argument lifecycle transition and publishes
// the corresponding event.
func (h *AdminReservationHandler) decide(c echo.Context, op func(uint64) (model.Reservation, error), action string) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	rec, err := op(id)
	if err != nil {
		return engineError(c, err)
	}
	publishEvent(c, action, rec)
	return c.JSON(http.StatusOK, rec)
}

// Report handles GET /v1/admin/reservations/report and renders the
// whole ledger as a plain-text table, one record per line.
func (h *AdminReservationHandler) Report(c echo.Context) error {
	recs := h.Engine.Reservations()
	var b strings.Builder
	if len(recs) == 0 {
		b.WriteString("No reservations available.\n")
	} else {
		b.WriteString("Reservations Report:\n")
		b.WriteString("ID | Owner | Kind | Resource | Status\n")
		for _, r := range recs {
			fmt.Fprintf(&b, "%d | %s | %s | %d | %s\n", r.ID, r.Owner, r.Kind, r.ResourceID, r.Status)
		}
	}
	return c.String(http.StatusOK, b.String())
}
