package service

import (
	"context"
	"fmt"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/owakeel/golf-music-backend/internal/cache"
	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/validation"
)

const waveListCacheKey = "waves:list"

// WaveRepository defines the persistence operations the wave service needs.
type WaveRepository interface {
	List(ctx context.Context) ([]*model.Wave, error)
	GetByID(ctx context.Context, id string) (*model.Wave, error)
	Create(ctx context.Context, wave *model.Wave) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Wave, error)
	Delete(ctx context.Context, id string) error
	FindByTitle(ctx context.Context, title, excludeID string) (*model.Wave, error)
	FindByYoutubeURL(ctx context.Context, url, excludeID string) (*model.Wave, error)
}

// WaveService implements the open-mic video business rules. The duplicate
// policy mirrors casts, but the wave table has no unique indexes behind it,
// so a lost race can still admit a duplicate.
type WaveService struct {
	repo  WaveRepository
	cache *cache.Cache
}

// NewWaveService creates a new wave service.
func NewWaveService(repo WaveRepository, c *cache.Cache) *WaveService {
	return &WaveService{repo: repo, cache: c}
}

// CreateWaveInput carries the fields accepted on wave creation.
type CreateWaveInput struct {
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	YoutubeURL string `json:"youtubeUrl"`
}

// UpdateWaveInput carries a partial update; nil pointers mean "not provided".
type UpdateWaveInput struct {
	Title      *string `json:"title"`
	Thumbnail  *string `json:"thumbnail"`
	YoutubeURL *string `json:"youtubeUrl"`
}

func waveTitleRules() []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error("Wave title is required"),
		ozzo.RuneLength(0, model.MaxWaveTitleLength).Error("Title cannot exceed 200 characters"),
	}
}

// List returns all waves, newest first, served from cache when possible.
func (s *WaveService) List(ctx context.Context) ([]*model.Wave, error) {
	var cached []*model.Wave
	if s.cache.GetJSON(ctx, waveListCacheKey, &cached) {
		return cached, nil
	}

	waves, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, waveListCacheKey, waves)
	return waves, nil
}

// Create validates the input, runs the duplicate checks and inserts the wave.
func (s *WaveService) Create(ctx context.Context, in CreateWaveInput) (*model.Wave, error) {
	if errs := validation.Run(
		validation.Field{Name: "title", Value: in.Title, Rules: waveTitleRules()},
		validation.Field{Name: "thumbnail", Value: in.Thumbnail, Rules: []ozzo.Rule{
			ozzo.Required.Error("Thumbnail URL is required"),
		}},
		validation.Field{Name: "youtubeUrl", Value: in.YoutubeURL, Rules: []ozzo.Rule{
			ozzo.Required.Error("YouTube URL is required"),
		}},
	); errs != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	titleMatch, err := s.repo.FindByTitle(ctx, in.Title, "")
	if err != nil {
		return nil, fmt.Errorf("wave duplicate check: %w", err)
	}
	videoMatch, err := s.repo.FindByYoutubeURL(ctx, in.YoutubeURL, "")
	if err != nil {
		return nil, fmt.Errorf("wave duplicate check: %w", err)
	}
	switch {
	case titleMatch != nil && videoMatch != nil && titleMatch.ID == videoMatch.ID:
		return nil, &ConflictError{Message: "Wave with same title and YouTube video already exists"}
	case titleMatch != nil:
		return nil, &ConflictError{Message: "Wave title already exists"}
	case videoMatch != nil:
		return nil, &ConflictError{Message: "This YouTube video already exists"}
	}

	wave := &model.Wave{
		Title:      in.Title,
		Thumbnail:  in.Thumbnail,
		YoutubeURL: in.YoutubeURL,
	}
	if err := s.repo.Create(ctx, wave); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, waveListCacheKey)
	return wave, nil
}

// Update applies a partial update with per-dimension duplicate checks for
// the fields actually present, excluding the record itself.
func (s *WaveService) Update(ctx context.Context, id string, in UpdateWaveInput) (*model.Wave, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrWaveNotFound
	}

	var fieldChecks []validation.Field
	fields := map[string]interface{}{}
	if in.Title != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "title", Value: *in.Title, Rules: waveTitleRules()})
		fields["title"] = *in.Title
	}
	if in.Thumbnail != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "thumbnail", Value: *in.Thumbnail, Rules: []ozzo.Rule{
			ozzo.Required.Error("Thumbnail URL is required"),
		}})
		fields["thumbnail"] = *in.Thumbnail
	}
	if in.YoutubeURL != nil {
		fieldChecks = append(fieldChecks, validation.Field{Name: "youtubeUrl", Value: *in.YoutubeURL, Rules: []ozzo.Rule{
			ozzo.Required.Error("YouTube URL is required"),
		}})
		fields["youtube_url"] = *in.YoutubeURL
	}

	if errs := validation.Run(fieldChecks...); errs != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	if in.Title != nil {
		match, err := s.repo.FindByTitle(ctx, *in.Title, id)
		if err != nil {
			return nil, fmt.Errorf("wave duplicate check: %w", err)
		}
		if match != nil {
			return nil, &ConflictError{Message: "Wave title already exists"}
		}
	}
	if in.YoutubeURL != nil {
		match, err := s.repo.FindByYoutubeURL(ctx, *in.YoutubeURL, id)
		if err != nil {
			return nil, fmt.Errorf("wave duplicate check: %w", err)
		}
		if match != nil {
			return nil, &ConflictError{Message: "This YouTube video already exists"}
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
		return nil, ErrWaveNotFound
	}

	s.cache.Delete(ctx, waveListCacheKey)
	return updated, nil
}

// Delete removes a wave after confirming it exists.
func (s *WaveService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrWaveNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, waveListCacheKey)
	return nil
}
