package handlers

import (
	"context"
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/api/render"
	"github.com/aqtareen/Taqreeb/internal/domain/venues"
)

type VenueService interface {
	List(ctx context.Context) ([]venues.Venue, error)
	Get(ctx context.Context, id int64) (venues.Venue, error)
	Create(ctx context.Context, in venues.Input) (venues.Venue, error)
	Update(ctx context.Context, id int64, in venues.Input) (venues.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type VenuesHandler struct {
	Service VenueService
}

func NewVenuesHandler(service VenueService) *VenuesHandler {
	return &VenuesHandler{Service: service}
}

type venueJSON struct {
	ID   int64  `json:"Venue_Id"`
	Name string `json:"Venue_Name"`
	City string `json:"City"`
}

func toVenueJSON(v venues.Venue) venueJSON {
	return venueJSON{ID: v.ID, Name: v.Name, City: v.City}
}

func (h *VenuesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, err, failure{message: "Error fetching venues"})
		return
	}

	out := make([]venueJSON, 0, len(items))
	for _, v := range items {
		out = append(out, toVenueJSON(v))
	}
	render.JSON(w, r, http.StatusOK, out)
}

func (h *VenuesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	venue, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, failure{notFound: venues.ErrNotFound, notFoundMsg: "Venue not found", message: "Error fetching venue"})
		return
	}
	render.JSON(w, r, http.StatusOK, toVenueJSON(venue))
}

func (h *VenuesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req venueJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	venue, err := h.Service.Create(r.Context(), venues.Input{Name: req.Name, City: req.City})
	if err != nil {
		respondError(w, r, err, failure{message: "Error creating venue"})
		return
	}
	render.JSON(w, r, http.StatusCreated, toVenueJSON(venue))
}

func (h *VenuesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req venueJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	venue, err := h.Service.Update(r.Context(), id, venues.Input{Name: req.Name, City: req.City})
	if err != nil {
		respondError(w, r, err, failure{notFound: venues.ErrNotFound, notFoundMsg: "Venue not found", message: "Error updating venue"})
		return
	}
	render.JSON(w, r, http.StatusOK, toVenueJSON(venue))
}

func (h *VenuesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, failure{notFound: venues.ErrNotFound, notFoundMsg: "Venue not found", message: "Error deleting venue"})
		return
	}
	render.NoContent(w)
}
