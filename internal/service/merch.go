package service

import (
	"context"
	"fmt"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/owakeel/golf-music-backend/internal/cache"
	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/validation"
)

const merchListCacheKey = "merch:list"

// MerchRepository defines the persistence operations the merch service needs.
type MerchRepository interface {
	List(ctx context.Context) ([]*model.Merch, error)
	GetByID(ctx context.Context, id string) (*model.Merch, error)
	Create(ctx context.Context, item *model.Merch) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Merch, error)
	Delete(ctx context.Context, id string) error
	FindByName(ctx context.Context, name, excludeID string) (*model.Merch, error)
	FindByPrintifyID(ctx context.Context, printifyID, excludeID string) (*model.Merch, error)
}

// MerchService implements the merchandise business rules.
type MerchService struct {
	repo  MerchRepository
	cache *cache.Cache
}

// NewMerchService creates a new merch service.
func NewMerchService(repo MerchRepository, c *cache.Cache) *MerchService {
	return &MerchService{repo: repo, cache: c}
}

// CreateMerchInput carries the fields accepted on merch creation.
type CreateMerchInput struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Image      string `json:"image"`
	PrintifyID string `json:"printifyId"`
}

// UpdateMerchInput carries a partial update; nil pointers mean "not provided".
type UpdateMerchInput struct {
	Name       *string `json:"name"`
	Price      *string `json:"price"`
	Image      *string `json:"image"`
	PrintifyID *string `json:"printifyId"`
}

// List returns all merch items, newest first, served from cache when possible.
func (s *MerchService) List(ctx context.Context) ([]*model.Merch, error) {
	var cached []*model.Merch
	if s.cache.GetJSON(ctx, merchListCacheKey, &cached) {
		return cached, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, merchListCacheKey, items)
	return items, nil
}

// Create validates the input, runs the duplicate checks and inserts the item.
// Name collides case-insensitively; the Printify id is only checked when set.
func (s *MerchService) Create(ctx context.Context, in CreateMerchInput) (*model.Merch, error) {
	if errs := validation.Run(
		validation.Field{Name: "name", Value: in.Name, Rules: []ozzo.Rule{ozzo.Required}},
		validation.Field{Name: "price", Value: in.Price, Rules: []ozzo.Rule{ozzo.Required}},
		validation.Field{Name: "image", Value: in.Image, Rules: []ozzo.Rule{ozzo.Required}},
	); errs != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	nameMatch, err := s.repo.FindByName(ctx, in.Name, "")
	if err != nil {
		return nil, fmt.Errorf("merch duplicate check: %w", err)
	}
	if nameMatch != nil {
		return nil, &ConflictError{Message: "A merch with this name already exists"}
	}
	if in.PrintifyID != "" {
		idMatch, err := s.repo.FindByPrintifyID(ctx, in.PrintifyID, "")
		if err != nil {
			return nil, fmt.Errorf("merch duplicate check: %w", err)
		}
		if idMatch != nil {
			return nil, &ConflictError{Message: "This Printify ID is already linked to another product"}
		}
	}

	item := &model.Merch{
		Name:       in.Name,
		Price:      in.Price,
		Image:      in.Image,
		PrintifyID: in.PrintifyID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, merchListCacheKey)
	return item, nil
}

// Update applies a partial update. The duplicate check runs only when a
// dimension field (name or printifyId) is included, excluding the record
// itself, and reports a single combined message.
func (s *MerchService) Update(ctx context.Context, id string, in UpdateMerchInput) (*model.Merch, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrMerchNotFound
	}

	var fieldChecks []validation.Field
	fields := map[string]interface{}{}
	if in.Name != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "name", Value: *in.Name, Rules: []ozzo.Rule{ozzo.Required}})
		fields["name"] = *in.Name
	}
	if in.Price != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "price", Value: *in.Price, Rules: []ozzo.Rule{ozzo.Required}})
		fields["price"] = *in.Price
	}
	if in.Image != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "image", Value: *in.Image, Rules: []ozzo.Rule{ozzo.Required}})
		fields["image"] = *in.Image
	}
	if in.PrintifyID != nil {
		if *in.PrintifyID == "" {
			fields["printify_id"] = nil
		} else {
			fields["printify_id"] = *in.PrintifyID
		}
	}

	if errs := validation.Run(fieldChecks...); errs != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	if in.Name != nil {
		match, err := s.repo.FindByName(ctx, *in.Name, id)
		if err != nil {
			return nil, fmt.Errorf("merch duplicate check: %w", err)
		}
		if match != nil {
			return nil, &ConflictError{Message: "Another merch item with same name or Printify ID already exists"}
		}
	}
	if in.PrintifyID != nil && *in.PrintifyID != "" {
		match, err := s.repo.FindByPrintifyID(ctx, *in.PrintifyID, id)
		if err != nil {
			return nil, fmt.Errorf("merch duplicate check: %w", err)
		}
		if match != nil {
			return nil, &ConflictError{Message: "Another merch item with same name or Printify ID already exists"}
		}
	}

	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrMerchNotFound
	}

	s.cache.Delete(ctx, merchListCacheKey)
	return updated, nil
}

// Delete removes a merch item after confirming it exists.
func (s *MerchService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMerchNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, merchListCacheKey)
	return nil
}
