package events

import (
	"context"
	"fmt"
	"time"

	"github.com/aqtareen/Taqreeb/internal/sanitize"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
)

// Details are the mutable fields of an event. Date is YYYY-MM-DD.
type Details struct {
	Name string `validate:"required,max=200"`
	Type string `validate:"max=100"`
	Date string `validate:"required,datetime=2006-01-02"`
}

type CreateInput struct {
	Details
	ClientID int64 `validate:"gt=0"`
}

var detailMessages = validation.Messages{
	"Name.required": "Event name is required",
	"Name.max":      "Event name must be at most 200 characters long",
	"Type.max":      "Event type must be at most 100 characters long",
	"Date.required": "Event date is required",
	"Date.datetime": "Event date must be in YYYY-MM-DD format",
	"ClientID":      "A valid client id is required",
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
		logger:    logger.With().Str("component", "events").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Event, error) {
	return s.repo.Get(ctx, id)
}

// GetByName returns the first event with exactly this name.
func (s *Service) GetByName(ctx context.Context, name string) (Event, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Event, error) {
	sanitize.Fields(&in.Name, &in.Type)
	if err := s.validator.Struct(in, detailMessages); err != nil {
		return Event{}, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return Event{}, err
	}

	event, err := s.repo.Create(ctx, Event{Name: in.Name, Type: in.Type, Date: date, ClientID: in.ClientID})
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info().Int64("event_id", event.ID).Int64("client_id", event.ClientID).Msg("event created")
	return event, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Details) (Event, error) {
	sanitize.Fields(&in.Name, &in.Type)
	if err := s.validator.Struct(in, detailMessages); err != nil {
		return Event{}, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return Event{}, err
	}

	event, err := s.repo.Update(ctx, Event{ID: id, Name: in.Name, Type: in.Type, Date: date})
	if err != nil {
		return Event{}, fmt.Errorf("update event %d: %w", id, err)
	}
	return event, nil
}

// Delete removes the event and, through the schema, its tasks, supplies,
// participants and payment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	s.logger.Info().Int64("event_id", id).Msg("event deleted")
	return nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, validation.New("Date", detailMessages["Date.datetime"])
	}
	return date, nil
}
