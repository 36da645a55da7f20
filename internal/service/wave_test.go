package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/owakeel/golf-music-backend/internal/model"
)

type mockWaveRepo struct {
	waves  map[string]*model.Wave
	nextID int
}

func newMockWaveRepo() *mockWaveRepo {
	return &mockWaveRepo{waves: make(map[string]*model.Wave)}
}

func (m *mockWaveRepo) List(ctx context.Context) ([]*model.Wave, error) {
	out := make([]*model.Wave, 0, len(m.waves))
	for _, w := range m.waves {
		out = append(out, w)
	}
	return out, nil
}

func (m *mockWaveRepo) GetByID(ctx context.Context, id string) (*model.Wave, error) {
	return m.waves[id], nil
}

func (m *mockWaveRepo) Create(ctx context.Context, wave *model.Wave) error {
	m.nextID++
	wave.ID = fmt.Sprintf("wave:%d", m.nextID)
	wave.CreatedAt = time.Now()
	wave.UpdatedAt = wave.CreatedAt
	m.waves[wave.ID] = wave
	return nil
}

func (m *mockWaveRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Wave, error) {
	wave, ok := m.waves[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["title"].(string); ok {
		wave.Title = v
	}
	if v, ok := fields["thumbnail"].(string); ok {
		wave.Thumbnail = v
	}
	if v, ok := fields["youtube_url"].(string); ok {
		wave.YoutubeURL = v
	}
	wave.UpdatedAt = time.Now()
	return wave, nil
}

func (m *mockWaveRepo) Delete(ctx context.Context, id string) error {
	delete(m.waves, id)
	return nil
}

func (m *mockWaveRepo) FindByTitle(ctx context.Context, title, excludeID string) (*model.Wave, error) {
	for _, w := range m.waves {
		if w.ID != excludeID && strings.EqualFold(w.Title, title) {
			return w, nil
		}
	}
	return nil, nil
}

func (m *mockWaveRepo) FindByYoutubeURL(ctx context.Context, url, excludeID string) (*model.Wave, error) {
	for _, w := range m.waves {
		if w.ID != excludeID && w.YoutubeURL == url {
			return w, nil
		}
	}
	return nil, nil
}

func validWaveInput() CreateWaveInput {
	return CreateWaveInput{
		Title:      "Friday Open Mic",
		Thumbnail:  "thumb.png",
		YoutubeURL: "https://youtu.be/xyz",
	}
}

func TestWaveService_Create_Validation(t *testing.T) {
	svc := NewWaveService(newMockWaveRepo(), nil)

	tests := []struct {
		name    string
		input   CreateWaveInput
		field   string
		message string
	}{
		{
			name:    "missing title",
			input:   CreateWaveInput{Thumbnail: "t.png", YoutubeURL: "https://youtu.be/x"},
			field:   "title",
			message: "Wave title is required",
		},
		{
			name: "title too long",
			input: CreateWaveInput{
				Title:      strings.Repeat("a", model.MaxWaveTitleLength+1),
				Thumbnail:  "t.png",
				YoutubeURL: "https://youtu.be/x",
			},
			field:   "title",
			message: "Title cannot exceed 200 characters",
		},
		{
			name:    "missing thumbnail",
			input:   CreateWaveInput{Title: "T", YoutubeURL: "https://youtu.be/x"},
			field:   "thumbnail",
			message: "Thumbnail URL is required",
		},
		{
			name:    "missing youtube url",
			input:   CreateWaveInput{Title: "T", Thumbnail: "t.png"},
			field:   "youtubeUrl",
			message: "YouTube URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0].Field != tt.field {
				t.Fatalf("expected single error on %s, got %v", tt.field, vErr.Fields)
			}
			if vErr.Fields[0].Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, vErr.Fields[0].Message)
			}
		})
	}
}

func TestWaveService_Create_TitleAtMaxLength(t *testing.T) {
	svc := NewWaveService(newMockWaveRepo(), nil)

	wave, err := svc.Create(context.Background(), CreateWaveInput{
		Title:      strings.Repeat("a", model.MaxWaveTitleLength),
		Thumbnail:  "t.png",
		YoutubeURL: "https://youtu.be/max",
	})
	if err != nil {
		t.Fatalf("expected 200-char title to pass, got %v", err)
	}
	if wave.ID == "" {
		t.Error("expected store-assigned id")
	}
}

func TestWaveService_Create_TitleLengthCountsRunes(t *testing.T) {
	ctx := context.Background()
	svc := NewWaveService(newMockWaveRepo(), nil)

	// 200 two-byte runes: well over 200 bytes but exactly at the limit.
	if _, err := svc.Create(ctx, CreateWaveInput{
		Title:      strings.Repeat("é", model.MaxWaveTitleLength),
		Thumbnail:  "t.png",
		YoutubeURL: "https://youtu.be/runes",
	}); err != nil {
		t.Fatalf("expected 200-rune title to pass, got %v", err)
	}

	_, err := svc.Create(ctx, CreateWaveInput{
		Title:      strings.Repeat("é", model.MaxWaveTitleLength+1),
		Thumbnail:  "t.png",
		YoutubeURL: "https://youtu.be/runes2",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for 201 runes, got %v", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Message != "Title cannot exceed 200 characters" {
		t.Errorf("unexpected field errors %v", vErr.Fields)
	}
}

func TestWaveService_Create_DuplicatePolicy(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateWaveInput
		message string
	}{
		{
			name:    "same record matches both dimensions",
			input:   validWaveInput(),
			message: "Wave with same title and YouTube video already exists",
		},
		{
			name: "title collides",
			input: CreateWaveInput{
				Title:      "FRIDAY open mic",
				Thumbnail:  "t.png",
				YoutubeURL: "https://youtu.be/other",
			},
			message: "Wave title already exists",
		},
		{
			name: "video collides",
			input: CreateWaveInput{
				Title:      "Another Night",
				Thumbnail:  "t.png",
				YoutubeURL: "https://youtu.be/xyz",
			},
			message: "This YouTube video already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockWaveRepo()
			svc := NewWaveService(repo, nil)
			if _, err := svc.Create(ctx, validWaveInput()); err != nil {
				t.Fatalf("seed create failed: %v", err)
			}

			_, err := svc.Create(ctx, tt.input)

			var cErr *ConflictError
			if !errors.As(err, &cErr) {
				t.Fatalf("expected ConflictError, got %v", err)
			}
			if cErr.Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, cErr.Message)
			}
		})
	}
}

func TestWaveService_Update_DuplicatePerDimension(t *testing.T) {
	ctx := context.Background()
	repo := newMockWaveRepo()
	svc := NewWaveService(repo, nil)

	if _, err := svc.Create(ctx, validWaveInput()); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	second, err := svc.Create(ctx, CreateWaveInput{
		Title:      "Second Night",
		Thumbnail:  "t.png",
		YoutubeURL: "https://youtu.be/second",
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	title := "Friday Open Mic"
	_, err = svc.Update(ctx, second.ID, UpdateWaveInput{Title: &title})
	var cErr *ConflictError
	if !errors.As(err, &cErr) || cErr.Message != "Wave title already exists" {
		t.Errorf("expected title conflict, got %v", err)
	}

	url := "https://youtu.be/xyz"
	_, err = svc.Update(ctx, second.ID, UpdateWaveInput{YoutubeURL: &url})
	if !errors.As(err, &cErr) || cErr.Message != "This YouTube video already exists" {
		t.Errorf("expected video conflict, got %v", err)
	}
}

func TestWaveService_Delete_NotFound(t *testing.T) {
	svc := NewWaveService(newMockWaveRepo(), nil)

	if err := svc.Delete(context.Background(), "wave:missing"); !errors.Is(err, ErrWaveNotFound) {
		t.Errorf("expected ErrWaveNotFound, got %v", err)
	}
}
