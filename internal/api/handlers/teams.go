package handlers

import (
	"context"
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/api/render"
	"github.com/aqtareen/Taqreeb/internal/domain/teams"
)

type TeamService interface {
	List(ctx context.Context) ([]teams.Team, error)
	Create(ctx context.Context, in teams.Input) (teams.Team, error)
}

type TeamsHandler struct {
	Service TeamService
}

func NewTeamsHandler(service TeamService) *TeamsHandler {
	return &TeamsHandler{Service: service}
}

type teamJSON struct {
	ID   int64  `json:"Team_Id"`
	Name string `json:"Team_Name"`
}

func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, err, failure{message: "Error fetching teams"})
		return
	}

	out := make([]teamJSON, 0, len(items))
	for _, t := range items {
		out = append(out, teamJSON{ID: t.ID, Name: t.Name})
	}
	render.JSON(w, r, http.StatusOK, out)
}

func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req teamJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.Service.Create(r.Context(), teams.Input{Name: req.Name})
	if err != nil {
		respondError(w, r, err, failure{message: "Error creating team"})
		return
	}
	render.JSON(w, r, http.StatusCreated, teamJSON{ID: team.ID, Name: team.Name})
}
