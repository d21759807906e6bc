package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aqtareen/Taqreeb/internal/api/problem"
	"github.com/aqtareen/Taqreeb/internal/api/render"
	"github.com/aqtareen/Taqreeb/internal/domain/events"
)

type EventService interface {
	List(ctx context.Context) ([]events.Event, error)
	Get(ctx context.Context, id int64) (events.Event, error)
	GetByName(ctx context.Context, name string) (events.Event, error)
	Create(ctx context.Context, in events.CreateInput) (events.Event, error)
	Update(ctx context.Context, id int64, in events.Details) (events.Event, error)
	Delete(ctx context.Context, id int64) error
}

type EventsHandler struct {
	Service EventService
}

func NewEventsHandler(service EventService) *EventsHandler {
	return &EventsHandler{Service: service}
}

type eventJSON struct {
	ID       int64  `json:"Event_Id"`
	Name     string `json:"Event_Name"`
	Type     string `json:"Event_Type"`
	Date     string `json:"Date"`
	ClientID int64  `json:"Client_Id"`
}

func toEventJSON(e events.Event) eventJSON {
	return eventJSON{
		ID:       e.ID,
		Name:     e.Name,
		Type:     e.Type,
		Date:     e.Date.Format(events.DateLayout),
		ClientID: e.ClientID,
	}
}

func (req eventJSON) details() events.Details {
	return events.Details{Name: req.Name, Type: req.Type, Date: req.Date}
}

var eventFailure = failure{notFound: events.ErrNotFound, notFoundMsg: "Event not found"}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, err, failure{message: "Error fetching events"})
		return
	}

	out := make([]eventJSON, 0, len(items))
	for _, e := range items {
		out = append(out, toEventJSON(e))
	}
	render.JSON(w, r, http.StatusOK, out)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	event, err := h.Service.Get(r.Context(), id)
	if err != nil {
		f := eventFailure
		f.message = "Error fetching event"
		respondError(w, r, err, f)
		return
	}
	render.JSON(w, r, http.StatusOK, toEventJSON(event))
}

func (h *EventsHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		problem.Write(w, r, http.StatusBadRequest, "Event name is required", nil)
		return
	}

	event, err := h.Service.GetByName(r.Context(), name)
	if err != nil {
		f := eventFailure
		f.message = "Error fetching event"
		respondError(w, r, err, f)
		return
	}
	render.JSON(w, r, http.StatusOK, toEventJSON(event))
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.Service.Create(r.Context(), events.CreateInput{Details: req.details(), ClientID: req.ClientID})
	if err != nil {
		if errors.Is(err, events.ErrClientNotFound) {
			problem.Write(w, r, http.StatusBadRequest, "Client not found", err)
			return
		}
		respondError(w, r, err, failure{message: "Error creating event"})
		return
	}
	render.JSON(w, r, http.StatusCreated, toEventJSON(event))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req eventJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.Service.Update(r.Context(), id, req.details())
	if err != nil {
		f := eventFailure
		f.message = "Error updating event"
		respondError(w, r, err, f)
		return
	}
	render.JSON(w, r, http.StatusOK, toEventJSON(event))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		f := eventFailure
		f.message = "Error deleting event"
		respondError(w, r, err, f)
		return
	}
	render.NoContent(w)
}
