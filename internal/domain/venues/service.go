package venues

import (
	"context"
	"fmt"

	"github.com/aqtareen/Taqreeb/internal/sanitize"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
)

type Input struct {
	Name string `validate:"required,max=200"`
	City string `validate:"required,max=100"`
}

var inputMessages = validation.Messages{
	"Name.required": "Venue name is required",
	"Name.max":      "Venue name must be at most 200 characters long",
	"City.required": "City is required",
	"City.max":      "City must be at most 100 characters long",
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
		logger:    logger.With().Str("component", "venues").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]Venue, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Venue, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Venue, error) {
	if err := s.check(&in); err != nil {
		return Venue{}, err
	}
	venue, err := s.repo.Create(ctx, Venue{Name: in.Name, City: in.City})
	if err != nil {
		return Venue{}, fmt.Errorf("create venue: %w", err)
	}
	s.logger.Info().Int64("venue_id", venue.ID).Msg("venue created")
	return venue, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Venue, error) {
	if err := s.check(&in); err != nil {
		return Venue{}, err
	}
	venue, err := s.repo.Update(ctx, Venue{ID: id, Name: in.Name, City: in.City})
	if err != nil {
		return Venue{}, fmt.Errorf("update venue %d: %w", id, err)
	}
	return venue, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	s.logger.Info().Int64("venue_id", id).Msg("venue deleted")
	return nil
}

func (s *Service) check(in *Input) error {
	sanitize.Fields(&in.Name, &in.City)
	return s.validator.Struct(*in, inputMessages)
}
