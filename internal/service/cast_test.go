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

// Mock implementations

type mockCastRepo struct {
	casts     map[string]*model.Cast
	nextID    int
	listErr   error
	createErr error
	findErr   error
}

func newMockCastRepo() *mockCastRepo {
	return &mockCastRepo{casts: make(map[string]*model.Cast)}
}

func (m *mockCastRepo) List(ctx context.Context) ([]*model.Cast, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*model.Cast, 0, len(m.casts))
	for _, c := range m.casts {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCastRepo) GetByID(ctx context.Context, id string) (*model.Cast, error) {
	return m.casts[id], nil
}

func (m *mockCastRepo) Create(ctx context.Context, cast *model.Cast) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	cast.ID = fmt.Sprintf("cast:%d", m.nextID)
	cast.CreatedAt = time.Now()
	cast.UpdatedAt = cast.CreatedAt
	m.casts[cast.ID] = cast
	return nil
}

func (m *mockCastRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Cast, error) {
	cast, ok := m.casts[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["title"].(string); ok {
		cast.Title = v
	}
	if v, ok := fields["youtube_url"].(string); ok {
		cast.YoutubeURL = v
	}
	if v, ok := fields["thumbnail"].(string); ok {
		cast.Thumbnail = v
	}
	if v, ok := fields["description"].(string); ok {
		cast.Description = v
	}
	cast.UpdatedAt = time.Now()
	return cast, nil
}

func (m *mockCastRepo) Delete(ctx context.Context, id string) error {
	delete(m.casts, id)
	return nil
}

func (m *mockCastRepo) FindByTitle(ctx context.Context, title, excludeID string) (*model.Cast, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, c := range m.casts {
		if c.ID != excludeID && strings.EqualFold(c.Title, title) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCastRepo) FindByYoutubeURL(ctx context.Context, url, excludeID string) (*model.Cast, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, c := range m.casts {
		if c.ID != excludeID && c.YoutubeURL == url {
			return c, nil
		}
	}
	return nil, nil
}

func validCastInput() CreateCastInput {
	return CreateCastInput{
		Title:      "Daily Drop",
		YoutubeURL: "https://youtube.com/watch?v=abc",
		Thumbnail:  "thumb.png",
	}
}

func TestCastService_Create_Success(t *testing.T) {
	svc := NewCastService(newMockCastRepo(), nil)

	cast, err := svc.Create(context.Background(), validCastInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cast.ID == "" {
		t.Error("expected store-assigned id")
	}
	if cast.Title != "Daily Drop" {
		t.Errorf("expected title Daily Drop, got %s", cast.Title)
	}
}

func TestCastService_Create_Validation(t *testing.T) {
	svc := NewCastService(newMockCastRepo(), nil)

	tests := []struct {
		name    string
		input   CreateCastInput
		field   string
		message string
	}{
		{
			name:    "missing title",
			input:   CreateCastInput{YoutubeURL: "https://youtube.com/x", Thumbnail: "t.png"},
			field:   "title",
			message: "Please add a podcast title",
		},
		{
			name:    "missing youtube link",
			input:   CreateCastInput{Title: "T", Thumbnail: "t.png"},
			field:   "youtubeUrl",
			message: "Please add a YouTube link",
		},
		{
			name:    "invalid youtube link",
			input:   CreateCastInput{Title: "T", YoutubeURL: "https://vimeo.com/x", Thumbnail: "t.png"},
			field:   "youtubeUrl",
			message: "Please provide a valid YouTube link",
		},
		{
			name:  "missing thumbnail",
			input: CreateCastInput{Title: "T", YoutubeURL: "https://youtu.be/x"},
			field: "thumbnail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Message != "Validation failed" {
				t.Errorf("unexpected message: %s", vErr.Message)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0].Field != tt.field {
				t.Fatalf("expected single error on %s, got %v", tt.field, vErr.Fields)
			}
			if tt.message != "" && vErr.Fields[0].Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, vErr.Fields[0].Message)
			}
		})
	}
}

func TestCastService_Create_DuplicatePolicy(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateCastInput
		message string
	}{
		{
			name:    "same record matches both dimensions",
			input:   validCastInput(),
			message: "Podcast with same title and link exists",
		},
		{
			name: "title collides case-insensitively",
			input: CreateCastInput{
				Title:      "DAILY DROP",
				YoutubeURL: "https://youtube.com/watch?v=other",
				Thumbnail:  "t.png",
			},
			message: "Podcast title already exists",
		},
		{
			name: "link collides with different title",
			input: CreateCastInput{
				Title:      "Other Show",
				YoutubeURL: "https://youtube.com/watch?v=abc",
				Thumbnail:  "t.png",
			},
			message: "Podcast YouTube link already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockCastRepo()
			svc := NewCastService(repo, nil)
			if _, err := svc.Create(ctx, validCastInput()); err != nil {
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
			if len(repo.casts) != 1 {
				t.Error("duplicate create must not write")
			}
		})
	}
}

func TestCastService_Create_TitleAndLinkOnDifferentRecords(t *testing.T) {
	ctx := context.Background()
	repo := newMockCastRepo()
	svc := NewCastService(repo, nil)

	if _, err := svc.Create(ctx, validCastInput()); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CreateCastInput{
		Title:      "Second Show",
		YoutubeURL: "https://youtube.com/watch?v=second",
		Thumbnail:  "t.png",
	}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	// Title matches record one, link matches record two: the combined
	// message only applies when both hit the same record, so the title
	// collision wins.
	_, err := svc.Create(ctx, CreateCastInput{
		Title:      "Daily Drop",
		YoutubeURL: "https://youtube.com/watch?v=second",
		Thumbnail:  "t.png",
	})

	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if cErr.Message != "Podcast title already exists" {
		t.Errorf("expected title message, got %q", cErr.Message)
	}
}

func TestCastService_Update_NotFound(t *testing.T) {
	svc := NewCastService(newMockCastRepo(), nil)

	title := "New"
	_, err := svc.Update(context.Background(), "cast:missing", UpdateCastInput{Title: &title})
	if !errors.Is(err, ErrCastNotFound) {
		t.Errorf("expected ErrCastNotFound, got %v", err)
	}
}

func TestCastService_Update_DuplicateExcludesSelf(t *testing.T) {
	ctx := context.Background()
	repo := newMockCastRepo()
	svc := NewCastService(repo, nil)

	created, err := svc.Create(ctx, validCastInput())
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	// Re-submitting the record's own title must not collide with itself.
	title := "Daily Drop"
	updated, err := svc.Update(ctx, created.ID, UpdateCastInput{Title: &title})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.Title != "Daily Drop" {
		t.Errorf("unexpected title %s", updated.Title)
	}
}

func TestCastService_Update_DuplicateOnProvidedDimension(t *testing.T) {
	ctx := context.Background()
	repo := newMockCastRepo()
	svc := NewCastService(repo, nil)

	if _, err := svc.Create(ctx, validCastInput()); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	second, err := svc.Create(ctx, CreateCastInput{
		Title:      "Second Show",
		YoutubeURL: "https://youtube.com/watch?v=second",
		Thumbnail:  "t.png",
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	title := "daily drop"
	_, err = svc.Update(ctx, second.ID, UpdateCastInput{Title: &title})

	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if cErr.Message != "Podcast title already exists" {
		t.Errorf("unexpected message %q", cErr.Message)
	}
}

func TestCastService_Update_PartialFieldsOnly(t *testing.T) {
	ctx := context.Background()
	repo := newMockCastRepo()
	svc := NewCastService(repo, nil)

	created, err := svc.Create(ctx, validCastInput())
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	desc := "new description"
	updated, err := svc.Update(ctx, created.ID, UpdateCastInput{Description: &desc})
	if err != nil {
		t.Fatalf("partial update failed: %v", err)
	}
	if updated.Description != "new description" {
		t.Errorf("description not updated: %s", updated.Description)
	}
	if updated.Title != "Daily Drop" {
		t.Errorf("title must be untouched, got %s", updated.Title)
	}
}

func TestCastService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMockCastRepo()
	svc := NewCastService(repo, nil)

	created, err := svc.Create(ctx, validCastInput())
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrCastNotFound) {
		t.Errorf("expected ErrCastNotFound on second delete, got %v", err)
	}
}
