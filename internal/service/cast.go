package service

import (
	"context"
	"fmt"
	"regexp"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/owakeel/golf-music-backend/internal/cache"
	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/validation"
)

// youtubeURLPattern accepts youtube.com, youtu.be and youtube.be links, with
// or without scheme and www.
var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.?be)/.+$`)

const castListCacheKey = "casts:list"

// CastRepository defines the persistence operations the cast service needs.
type CastRepository interface {
	List(ctx context.Context) ([]*model.Cast, error)
	GetByID(ctx context.Context, id string) (*model.Cast, error)
	Create(ctx context.Context, cast *model.Cast) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Cast, error)
	Delete(ctx context.Context, id string) error
	FindByTitle(ctx context.Context, title, excludeID string) (*model.Cast, error)
	FindByYoutubeURL(ctx context.Context, url, excludeID string) (*model.Cast, error)
}

// CastService implements the podcast-episode business rules: ordered field
// validation, the duplicate-detection policy and cached public listing.
type CastService struct {
	repo  CastRepository
	cache *cache.Cache
}

// NewCastService creates a new cast service.
func NewCastService(repo CastRepository, c *cache.Cache) *CastService {
	return &CastService{repo: repo, cache: c}
}

// CreateCastInput carries the fields accepted on cast creation.
type CreateCastInput struct {
	Title       string `json:"title"`
	YoutubeURL  string `json:"youtubeUrl"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}

// UpdateCastInput carries a partial update; nil pointers mean "not provided".
type UpdateCastInput struct {
	Title       *string `json:"title"`
	YoutubeURL  *string `json:"youtubeUrl"`
	Thumbnail   *string `json:"thumbnail"`
	Description *string `json:"description"`
}

// List returns all casts, newest first, served from cache when possible.
func (s *CastService) List(ctx context.Context) ([]*model.Cast, error) {
	var cached []*model.Cast
	if s.cache.GetJSON(ctx, castListCacheKey, &cached) {
		return cached, nil
	}

	casts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, castListCacheKey, casts)
	return casts, nil
}

// Create validates the input, runs the duplicate checks and inserts the cast.
func (s *CastService) Create(ctx context.Context, in CreateCastInput) (*model.Cast, error) {
	if errs := validation.Run(
		validation.Field{Name: "title", Value: in.Title, Rules: []ozzo.Rule{
			ozzo.Required.Error("Please add a podcast title"),
		}},
		validation.Field{Name: "youtubeUrl", Value: in.YoutubeURL, Rules: []ozzo.Rule{
			ozzo.Required.Error("Please add a YouTube link"),
			ozzo.Match(youtubeURLPattern).Error("Please provide a valid YouTube link"),
		}},
		validation.Field{Name: "thumbnail", Value: in.Thumbnail, Rules: []ozzo.Rule{
			ozzo.Required,
		}},
	); errs != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	titleMatch, err := s.repo.FindByTitle(ctx, in.Title, "")
	if err != nil {
		return nil, fmt.Errorf("cast duplicate check: %w", err)
	}
	urlMatch, err := s.repo.FindByYoutubeURL(ctx, in.YoutubeURL, "")
	if err != nil {
		return nil, fmt.Errorf("cast duplicate check: %w", err)
	}
	switch {
	case titleMatch != nil && urlMatch != nil && titleMatch.ID == urlMatch.ID:
		return nil, &ConflictError{Message: "Podcast with same title and link exists"}
	case titleMatch != nil:
		return nil, &ConflictError{Message: "Podcast title already exists"}
	case urlMatch != nil:
		return nil, &ConflictError{Message: "Podcast YouTube link already exists"}
	}

	cast := &model.Cast{
		Title:       in.Title,
		YoutubeURL:  in.YoutubeURL,
		Thumbnail:   in.Thumbnail,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, cast); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, castListCacheKey)
	return cast, nil
}

// Update applies a partial update. Duplicate checks run only for the
// dimension fields actually present in the input, excluding the record
// itself.
func (s *CastService) Update(ctx context.Context, id string, in UpdateCastInput) (*model.Cast, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCastNotFound
	}

	var fieldChecks []validation.Field
	fields := map[string]interface{}{}
	if in.Title != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "title", Value: *in.Title, Rules: []ozzo.Rule{
			ozzo.Required.Error("Please add a podcast title"),
		}})
		fields["title"] = *in.Title
	}
	if in.YoutubeURL != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "youtubeUrl", Value: *in.YoutubeURL, Rules: []ozzo.Rule{
			ozzo.Required.Error("Please add a YouTube link"),
			ozzo.Match(youtubeURLPattern).Error("Please provide a valid YouTube link"),
		}})
		fields["youtube_url"] = *in.YoutubeURL
	}
	if in.Thumbnail != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "thumbnail", Value: *in.Thumbnail, Rules: []ozzo.Rule{
			ozzo.Required,
		}})
		fields["thumbnail"] = *in.Thumbnail
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}

	if errs := validation.Run(fieldChecks...); errs != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	if in.Title != nil {
		match, err := s.repo.FindByTitle(ctx, *in.Title, id)
		if err != nil {
			return nil, fmt.Errorf("cast duplicate check: %w", err)
		}
		if match != nil {
			return nil, &ConflictError{Message: "Podcast title already exists"}
		}
	}
	if in.YoutubeURL != nil {
		match, err := s.repo.FindByYoutubeURL(ctx, *in.YoutubeURL, id)
		if err != nil {
			return nil, fmt.Errorf("cast duplicate check: %w", err)
		}
		if match != nil {
			return nil, &ConflictError{Message: "Podcast YouTube link already exists"}
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
		return nil, ErrCastNotFound
	}

	s.cache.Delete(ctx, castListCacheKey)
	return updated, nil
}

// Delete removes a cast after confirming it exists.
func (s *CastService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCastNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, castListCacheKey)
	return nil
}
