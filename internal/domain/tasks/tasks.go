// Package tasks tracks work items, optionally tied to an event and assigned
// to a team.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/aqtareen/Taqreeb/internal/sanitize"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound = errors.New("task not found")
	// ErrInvalidReference is returned when EventID or TeamID names a missing row.
	ErrInvalidReference = errors.New("referenced event or team not found")
)

type Task struct {
	ID      int64
	Name    string
	EventID *int64
	TeamID  *int64
}

type Repository interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id int64) (Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int64) error
}

type Input struct {
	Name    string `validate:"required,max=200"`
	EventID *int64 `validate:"omitempty,gt=0"`
	TeamID  *int64 `validate:"omitempty,gt=0"`
}

var inputMessages = validation.Messages{
	"Name.required": "Task name is required",
	"Name.max":      "Task name must be at most 200 characters long",
	"EventID":       "Event id must be a positive number",
	"TeamID":        "Team id must be a positive number",
}

type Service struct {
	repo      Repository
	validator *validation.Validator
	logger    zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validation.NewValidator(),
		logger:    logger.With().Str("component", "tasks").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Task, error) {
	if err := s.check(&in); err != nil {
		return Task{}, err
	}
	task, err := s.repo.Create(ctx, Task{Name: in.Name, EventID: in.EventID, TeamID: in.TeamID})
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	s.logger.Info().Int64("task_id", task.ID).Msg("task created")
	return task, nil
}

// Update replaces every field of the task.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Task, error) {
	if err := s.check(&in); err != nil {
		return Task{}, err
	}
	task, err := s.repo.Update(ctx, Task{ID: id, Name: in.Name, EventID: in.EventID, TeamID: in.TeamID})
	if err != nil {
		return Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (s *Service) check(in *Input) error {
	in.Name = sanitize.Text(in.Name)
	return s.validator.Struct(*in, inputMessages)
}
