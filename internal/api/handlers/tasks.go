package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/api/problem"
	"github.com/aqtareen/Taqreeb/internal/api/render"
	"github.com/aqtareen/Taqreeb/internal/domain/tasks"
)

type TaskService interface {
	List(ctx context.Context) ([]tasks.Task, error)
	Get(ctx context.Context, id int64) (tasks.Task, error)
	Create(ctx context.Context, in tasks.Input) (tasks.Task, error)
	Update(ctx context.Context, id int64, in tasks.Input) (tasks.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TasksHandler struct {
	Service TaskService
}

func NewTasksHandler(service TaskService) *TasksHandler {
	return &TasksHandler{Service: service}
}

// taskJSON uses null for a task without an event or team.
type taskJSON struct {
	ID      int64  `json:"Task_Id"`
	Name    string `json:"Task_Name"`
	EventID *int64 `json:"Event_Id"`
	TeamID  *int64 `json:"Team_Id"`
}

func toTaskJSON(t tasks.Task) taskJSON {
	return taskJSON{ID: t.ID, Name: t.Name, EventID: t.EventID, TeamID: t.TeamID}
}

func (req taskJSON) input() tasks.Input {
	return tasks.Input{Name: req.Name, EventID: req.EventID, TeamID: req.TeamID}
}

var taskFailure = failure{notFound: tasks.ErrNotFound, notFoundMsg: "Task not found"}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, err, failure{message: "Error fetching tasks"})
		return
	}

	out := make([]taskJSON, 0, len(items))
	for _, t := range items {
		out = append(out, toTaskJSON(t))
	}
	render.JSON(w, r, http.StatusOK, out)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.Service.Get(r.Context(), id)
	if err != nil {
		f := taskFailure
		f.message = "Error fetching task"
		respondError(w, r, err, f)
		return
	}
	render.JSON(w, r, http.StatusOK, toTaskJSON(task))
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.Service.Create(r.Context(), req.input())
	if err != nil {
		if errors.Is(err, tasks.ErrInvalidReference) {
			problem.Write(w, r, http.StatusBadRequest, "Referenced event or team does not exist", err)
			return
		}
		respondError(w, r, err, failure{message: "Error creating task"})
		return
	}
	render.JSON(w, r, http.StatusCreated, toTaskJSON(task))
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req taskJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.Service.Update(r.Context(), id, req.input())
	if err != nil {
		if errors.Is(err, tasks.ErrInvalidReference) {
			problem.Write(w, r, http.StatusBadRequest, "Referenced event or team does not exist", err)
			return
		}
		f := taskFailure
		f.message = "Error updating task"
		respondError(w, r, err, f)
		return
	}
	render.JSON(w, r, http.StatusOK, toTaskJSON(task))
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		f := taskFailure
		f.message = "Error deleting task"
		respondError(w, r, err, f)
		return
	}
	render.NoContent(w)
}
