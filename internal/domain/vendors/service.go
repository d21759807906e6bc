// Package vendors manages vendors and the catalogue items they supply.
package vendors

import (
	"context"
	"fmt"

	"github.com/aqtareen/Taqreeb/internal/sanitize"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
)

type Input struct {
	Name string `validate:"required,max=200"`
}

type ItemInput struct {
	Name string `validate:"required,max=100"`
}

var (
	vendorMessages = validation.Messages{
		"Name.required": "Vendor name is required",
		"Name.max":      "Vendor name must be at most 200 characters long",
	}
	itemMessages = validation.Messages{
		"Name.required": "Item name is required",
		"Name.max":      "Item name must be at most 100 characters long",
	}
)

type Service struct {
	repo      Repository
	validator *validation.Validator
	logger    zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validation.NewValidator(),
		logger:    logger.With().Str("component", "vendors").Logger(),
	}
}

// List returns vendors ordered by name.
func (s *Service) List(ctx context.Context) ([]Vendor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Vendor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Vendor, error) {
	in.Name = sanitize.Text(in.Name)
	if err := s.validator.Struct(in, vendorMessages); err != nil {
		return Vendor{}, err
	}
	vendor, err := s.repo.Create(ctx, in.Name)
	if err != nil {
		return Vendor{}, fmt.Errorf("create vendor: %w", err)
	}
	s.logger.Info().Int64("vendor_id", vendor.ID).Msg("vendor created")
	return vendor, nil
}

// Delete removes the vendor and its item links. Items stay in the catalogue.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete vendor %d: %w", id, err)
	}
	s.logger.Info().Int64("vendor_id", id).Msg("vendor deleted")
	return nil
}

func (s *Service) ListItems(ctx context.Context, vendorID int64) ([]Item, error) {
	return s.repo.ListItems(ctx, vendorID)
}

func (s *Service) AddItem(ctx context.Context, vendorID int64, in ItemInput) (Item, error) {
	in.Name = sanitize.Text(in.Name)
	if err := s.validator.Struct(in, itemMessages); err != nil {
		return Item{}, err
	}
	item, err := s.repo.AddItem(ctx, vendorID, in.Name)
	if err != nil {
		return Item{}, fmt.Errorf("add item to vendor %d: %w", vendorID, err)
	}
	s.logger.Info().Int64("vendor_id", vendorID).Int64("item_id", item.ID).Msg("vendor item linked")
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, vendorID, itemID int64) error {
	if err := s.repo.RemoveItem(ctx, vendorID, itemID); err != nil {
		return fmt.Errorf("remove item %d from vendor %d: %w", itemID, vendorID, err)
	}
	return nil
}

