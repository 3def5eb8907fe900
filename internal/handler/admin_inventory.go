package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/engine"
	"github.com/frocha1012/travel-reservation/internal/model"
)

// AdminInventoryHandler exposes flight and hotel catalog management to
// administrators.  Resource ids are chosen by the administrator on
// creation, mirroring how the catalog has always been keyed; the
// engine refuses duplicates.  Deleting a resource never touches the
// ledger; history is preserved and availability simply reads zero.
type AdminInventoryHandler struct {
	Engine *engine.Engine
}

func NewAdminInventoryHandler(e *engine.Engine) *AdminInventoryHandler {
	return &AdminInventoryHandler{Engine: e}
}

type flightReq struct {
	ID            uint64 `json:"id"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	TotalSeats    int    `json:"total_seats"`
}

type hotelReq struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	TotalRooms int    `json:"total_rooms"`
}

// CreateFlight handles POST /v1/admin/flights.
func (h *AdminInventoryHandler) CreateFlight(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if req.TotalSeats < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_seats must not be negative"})
	}
	f := model.Flight{
		ID:            req.ID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		TotalSeats:    req.TotalSeats,
	}
	if err := h.Engine.CreateFlight(f); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// UpdateFlight handles PUT /v1/admin/flights/:id.  The path id wins;
// a different id in the body is rejected rather than silently moved.
func (h *AdminInventoryHandler) UpdateFlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID != 0 && req.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id cannot be changed"})
	}
	if req.TotalSeats < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_seats must not be negative"})
	}
	f := model.Flight{
		ID:            id,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		TotalSeats:    req.TotalSeats,
	}
	if err := h.Engine.UpdateFlight(f); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// DeleteFlight handles DELETE /v1/admin/flights/:id.
func (h *AdminInventoryHandler) DeleteFlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	if err := h.Engine.DeleteFlight(id); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateHotel handles POST /v1/admin/hotels.
func (h *AdminInventoryHandler) CreateHotel(c echo.Context) error {
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if req.TotalRooms < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_rooms must not be negative"})
	}
	ht := model.Hotel{ID: req.ID, Name: req.Name, Location: req.Location, TotalRooms: req.TotalRooms}
	if err := h.Engine.CreateHotel(ht); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, ht)
}

// UpdateHotel handles PUT /v1/admin/hotels/:id.
func (h *AdminInventoryHandler) UpdateHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID != 0 && req.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id cannot be changed"})
	}
	if req.TotalRooms < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_rooms must not be negative"})
	}
	ht := model.Hotel{ID: id, Name: req.Name, Location: req.Location, TotalRooms: req.TotalRooms}
	if err := h.Engine.UpdateHotel(ht); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, ht)
}

// DeleteHotel handles DELETE /v1/admin/hotels/:id.
func (h *AdminInventoryHandler) DeleteHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	if err := h.Engine.DeleteHotel(id); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
