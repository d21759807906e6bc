// Package accounts registers and authenticates users.
//
// Register writes a users row plus exactly one clients or employees row in a
// single transaction. Employees are assigned a team picked uniformly at
// random from the existing teams. Passwords are stored as bcrypt hashes and
// Authenticate compares in constant time, reporting the same error for an
// unknown email and a wrong password.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/aqtareen/Taqreeb/internal/metrics"
	"github.com/aqtareen/Taqreeb/internal/storage"
	"github.com/aqtareen/Taqreeb/internal/telemetry"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the default cost factor for password hashing.
const BcryptCost = 12

// dummyPassword is hashed once per service so that logins for unknown
// emails spend the same bcrypt time as real ones.
const dummyPassword = "taqreeb-timing-equalizer"

// RegisterInput is the raw registration request.
type RegisterInput struct {
	FirstName string `validate:"min=2,max=100"`
	LastName  string `validate:"min=2,max=100"`
	Email     string `validate:"contains=@,max=100"`
	Role      string `validate:"oneof=client employee"`
	Password  string `validate:"min=6,maxbytes=72"`
}

var registerMessages = validation.Messages{
	"FirstName.min":     "First name must be at least 2 characters long",
	"FirstName.max":     "First name must be at most 100 characters long",
	"LastName.min":      "Last name must be at least 2 characters long",
	"LastName.max":      "Last name must be at most 100 characters long",
	"Email.contains":    "Please provide a valid email address",
	"Email.max":         "Email must be at most 100 characters long",
	"Role":              "Please select a valid role",
	"Password.min":      "Password must be at least 6 characters long",
	"Password.maxbytes": "Password must be at most 72 bytes long",
}

// normalized trims the name and email fields. Role is checked as sent and
// the password is never altered.
func (in RegisterInput) normalized() RegisterInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

type Service struct {
	repo      Repository
	validator *validation.Validator
	logger    zerolog.Logger
	cost      int
	dummyHash []byte

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Service)

// WithBcryptCost overrides BcryptCost. Values outside bcrypt's range are
// clamped.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.cost = min(max(cost, bcrypt.MinCost), bcrypt.MaxCost)
	}
}

// WithSeed makes team assignment reproducible.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	}
}

// WithRand supplies the generator used for team assignment.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

func NewService(repo Repository, logger zerolog.Logger, opts ...Option) *Service {
	now := uint64(time.Now().UnixNano())
	s := &Service{
		repo:      repo,
		validator: validation.NewValidator(),
		logger:    logger.With().Str("component", "accounts").Logger(),
		cost:      BcryptCost,
		rng:       rand.New(rand.NewPCG(now, now>>7)),
	}
	for _, opt := range opts {
		opt(s)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), s.cost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to prepare dummy password hash")
	}
	s.dummyHash = hash
	return s
}

// Register validates in, then creates the user and its role row in one
// transaction. It returns the new user id.
//
// Errors: *ValidationError, ErrDuplicateEmail, ErrNoTeamsAvailable,
// *storage.TimeoutError or *RegistrationFailedError. On any error no rows
// are persisted.
func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	ctx, span := telemetry.Tracer("accounts").Start(ctx, "accounts.Register")
	defer span.End()

	in = in.normalized()
	span.SetAttributes(attribute.String("account.role", in.Role))

	if err := s.validator.Struct(in, registerMessages); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(roleLabel(in.Role), "invalid").Inc()
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return 0, s.registrationFailed(span, in.Role, &RegistrationFailedError{Err: fmt.Errorf("hash password: %w", err)})
	}

	role := Role(in.Role)
	var userID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		id, err := tx.CreateUser(ctx, NewUser{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			Role:         role,
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}

		switch role {
		case RoleClient:
			if _, err := tx.CreateClient(ctx, id); err != nil {
				return err
			}
		case RoleEmployee:
			teamIDs, err := tx.ListTeamIDs(ctx)
			if err != nil {
				return err
			}
			if len(teamIDs) == 0 {
				return ErrNoTeamsAvailable
			}
			teamID := teamIDs[s.pick(len(teamIDs))]
			if _, err := tx.CreateEmployee(ctx, id, teamID); err != nil {
				return err
			}
			span.SetAttributes(attribute.Int64("account.team_id", teamID))
		}

		userID = id
		return nil
	})
	if err != nil {
		return 0, s.registrationFailed(span, in.Role, classifyRegisterError(err))
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role), "success").Inc()
	s.logger.Info().Int64("user_id", userID).Str("role", string(role)).Msg("user registered")
	return userID, nil
}

func classifyRegisterError(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrNoTeamsAvailable):
		return err
	case storage.IsTimeout(err):
		return err
	default:
		return &RegistrationFailedError{Err: err}
	}
}

func (s *Service) registrationFailed(span trace.Span, role string, err error) error {
	outcome := "error"
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		outcome = "duplicate_email"
	case errors.Is(err, ErrNoTeamsAvailable):
		outcome = "no_teams"
	case storage.IsTimeout(err):
		outcome = "timeout"
	}
	metrics.RegistrationsTotal.WithLabelValues(roleLabel(role), outcome).Inc()

	if outcome == "duplicate_email" {
		s.logger.Debug().Msg("registration rejected: duplicate email")
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	s.logger.Error().Err(err).Str("role", role).Str("outcome", outcome).Msg("registration failed")
	return err
}

// Authenticate returns the profile for email when password matches.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Profile, error) {
	ctx, span := telemetry.Tracer("accounts").Start(ctx, "accounts.Authenticate")
	defer span.End()

	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return Profile{}, validation.New("credentials", "Email and password are required")
	}

	creds, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		// Burn the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return Profile{}, ErrInvalidCredentials
	case err != nil:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return Profile{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return Profile{}, ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return creds.Profile, nil
}

func (s *Service) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// roleLabel keeps metric cardinality bounded for invalid input.
func roleLabel(role string) string {
	switch Role(role) {
	case RoleClient, RoleEmployee:
		return role
	default:
		return "unknown"
	}
}
