// Package teams manages the teams employees are assigned to at
// registration.
package teams

import (
	"context"
	"fmt"

	"github.com/aqtareen/Taqreeb/internal/sanitize"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
)

type Team struct {
	ID   int64
	Name string
}

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	Create(ctx context.Context, name string) (Team, error)
}

type Input struct {
	Name string `validate:"required,max=100"`
}

var inputMessages = validation.Messages{
	"Name.required": "Team name is required",
	"Name.max":      "Team name must be at most 100 characters long",
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
		logger:    logger.With().Str("component", "teams").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]Team, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (Team, error) {
	in.Name = sanitize.Text(in.Name)
	if err := s.validator.Struct(in, inputMessages); err != nil {
		return Team{}, err
	}
	team, err := s.repo.Create(ctx, in.Name)
	if err != nil {
		return Team{}, fmt.Errorf("create team: %w", err)
	}
	s.logger.Info().Int64("team_id", team.ID).Str("team_name", team.Name).Msg("team created")
	return team, nil
}
