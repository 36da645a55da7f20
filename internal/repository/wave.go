package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/owakeel/golf-music-backend/internal/database"
	"github.com/owakeel/golf-music-backend/internal/model"
)

// WaveRepository handles persistence for open-mic videos.
type WaveRepository struct {
	db database.Database
}

// NewWaveRepository creates a new wave repository.
func NewWaveRepository(db database.Database) *WaveRepository {
	return &WaveRepository{db: db}
}

// List returns all waves, newest first.
func (r *WaveRepository) List(ctx context.Context) ([]*model.Wave, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM wave ORDER BY created_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list waves: %w", err)
	}

	rows := rowsFromResult(results)
	waves := make([]*model.Wave, 0, len(rows))
	for _, row := range rows {
		waves = append(waves, parseWave(row))
	}
	return waves, nil
}

// GetByID returns the wave with the given id, or nil when it does not exist.
// A malformed id is treated the same as a missing record.
func (r *WaveRepository) GetByID(ctx context.Context, id string) (*model.Wave, error) {
	if !validRecordID(id, "wave") {
		return nil, nil
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wave: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wave: %w", err)
	}
	return parseWave(row), nil
}

// Create inserts a new wave and fills in its store-assigned id and timestamps.
func (r *WaveRepository) Create(ctx context.Context, wave *model.Wave) error {
	query := `CREATE wave CONTENT {
		title: $title,
		thumbnail: $thumbnail,
		youtube_url: $youtube_url,
		created_at: time::now(),
		updated_at: time::now()
	}`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"title":       wave.Title,
		"thumbnail":   wave.Thumbnail,
		"youtube_url": wave.YoutubeURL,
	})
	if err != nil {
		return normalizeStoreError(err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		return fmt.Errorf("create wave: %w", err)
	}
	*wave = *parseWave(row)
	return nil
}

// Update applies the given store-field changes and returns the updated wave,
// or nil when the record does not exist.
func (r *WaveRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Wave, error) {
	if !validRecordID(id, "wave") {
		return nil, nil
	}

	query, vars := buildUpdateQuery(id, fields)
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, normalizeStoreError(err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("update wave: %w", err)
	}
	return parseWave(row), nil
}

// Delete removes the wave with the given id.
func (r *WaveRepository) Delete(ctx context.Context, id string) error {
	if !validRecordID(id, "wave") {
		return nil
	}
	if err := r.db.Execute(ctx, `DELETE type::record($id)`, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("delete wave: %w", err)
	}
	return nil
}

// FindByTitle returns a wave whose title matches case-insensitively, or nil.
// When excludeID is set, that record is skipped.
func (r *WaveRepository) FindByTitle(ctx context.Context, title, excludeID string) (*model.Wave, error) {
	query := `SELECT * FROM wave WHERE string::lowercase(title) = string::lowercase($title)`
	vars := map[string]interface{}{"title": title}
	if excludeID != "" {
		query += ` AND id != type::record($exclude)`
		vars["exclude"] = excludeID
	}
	query += ` LIMIT 1`

	return r.findOne(ctx, query, vars)
}

// FindByYoutubeURL returns a wave with the exact YouTube link, or nil.
func (r *WaveRepository) FindByYoutubeURL(ctx context.Context, url, excludeID string) (*model.Wave, error) {
	query := `SELECT * FROM wave WHERE youtube_url = $url`
	vars := map[string]interface{}{"url": url}
	if excludeID != "" {
		query += ` AND id != type::record($exclude)`
		vars["exclude"] = excludeID
	}
	query += ` LIMIT 1`

	return r.findOne(ctx, query, vars)
}

func (r *WaveRepository) findOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Wave, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find wave: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find wave: %w", err)
	}
	return parseWave(row), nil
}

func parseWave(row map[string]interface{}) *model.Wave {
	return &model.Wave{
		ID:         recordID(row["id"]),
		Title:      getString(row, "title"),
		Thumbnail:  getString(row, "thumbnail"),
		YoutubeURL: getString(row, "youtube_url"),
		CreatedAt:  getTime(row, "created_at"),
		UpdatedAt:  getTime(row, "updated_at"),
	}
}
