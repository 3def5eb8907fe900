package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/engine"
	"github.com/frocha1012/travel-reservation/internal/model"
)

// PublicHandler exposes unauthenticated browse endpoints: flight and
// hotel listings with derived availability, single-resource lookups
// and the flight recommendation.  Availability is recomputed by the
// engine on every request; these endpoints never see a stored counter.
type PublicHandler struct {
	Engine *engine.Engine
	rng    *rand.Rand
}

// NewPublicHandler constructs a PublicHandler.  The recommendation's
// random source is seeded once here, not per call.
func NewPublicHandler(e *engine.Engine) *PublicHandler {
	return &PublicHandler{
		Engine: e,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// flightView is a flight plus its derived seat availability.
type flightView struct {
	model.Flight
	AvailableSeats int `json:"available_seats"`
}

// hotelView is a hotel plus its derived room availability.
type hotelView struct {
	model.Hotel
	AvailableRooms int `json:"available_rooms"`
}

// ListFlights handles GET /v1/flights.  Every flight is returned in
// catalog order with the number of seats still open.
func (h *PublicHandler) ListFlights(c echo.Context) error {
	flights := h.Engine.Flights()
	out := make([]flightView, 0, len(flights))
	for _, f := range flights {
		out = append(out, flightView{Flight: f, AvailableSeats: h.Engine.AvailableSeats(f.ID)})
	}
	return c.JSON(http.StatusOK, echo.Map{"flights": out})
}

// GetFlight handles GET /v1/flights/:id.
func (h *PublicHandler) GetFlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	f, err := h.Engine.GetFlight(id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, flightView{Flight: f, AvailableSeats: h.Engine.AvailableSeats(f.ID)})
}

// ListHotels handles GET /v1/hotels.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	hotels := h.Engine.Hotels()
	out := make([]hotelView, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, hotelView{Hotel: ht, AvailableRooms: h.Engine.AvailableRooms(ht.ID)})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": out})
}

// GetHotel handles GET /v1/hotels/:id.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ht, err := h.Engine.GetHotel(id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, hotelView{Hotel: ht, AvailableRooms: h.Engine.AvailableRooms(ht.ID)})
}

// Phrases rotated through by the recommendation endpoint.
var recommendPhrases = []string{
	"You should take a look at flight %d from %s to %s. It's a hot destination among our travelers!",
	"Don't miss out on flight %d from %s to %s. It's a top choice for our travel enthusiasts!",
	"Explore the wonders of flight %d by booking a trip from %s to %s. Adventure awaits!",
}

// RecommendFlight handles GET /v1/flights/recommendation.  It picks a
// random flight from the catalog and wraps it in one of a few stock
// phrases.  This is presentation flavor only; it reads the catalog
// like any other query and makes no consistency promises.
func (h *PublicHandler) RecommendFlight(c echo.Context) error {
	flights := h.Engine.Flights()
	if len(flights) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "No flights available to recommend."})
	}
	f := flights[h.rng.Intn(len(flights))]
	phrase := recommendPhrases[h.rng.Intn(len(recommendPhrases))]
	return c.JSON(http.StatusOK, echo.Map{
		"flight":  flightView{Flight: f, AvailableSeats: h.Engine.AvailableSeats(f.ID)},
		"message": fmt.Sprintf(phrase, f.ID, f.Origin, f.Destination),
	})
}
