package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/owakeel/golf-music-backend/internal/database"
	"github.com/owakeel/golf-music-backend/internal/model"
)

// CastRepository handles persistence for podcast episodes.
type CastRepository struct {
	db database.Database
}

// NewCastRepository creates a new cast repository.
func NewCastRepository(db database.Database) *CastRepository {
	return &CastRepository{db: db}
}

// List returns all casts, newest first.
func (r *CastRepository) List(ctx context.Context) ([]*model.Cast, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM cast ORDER BY created_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list casts: %w", err)
	}

	rows := rowsFromResult(results)
	casts := make([]*model.Cast, 0, len(rows))
	for _, row := range rows {
		casts = append(casts, parseCast(row))
	}
	return casts, nil
}

// GetByID returns the cast with the given id, or nil when it does not exist.
// A malformed id is treated the same as a missing record.
func (r *CastRepository) GetByID(ctx context.Context, id string) (*model.Cast, error) {
	if !validRecordID(id, "cast") {
		return nil, nil
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cast: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cast: %w", err)
	}
	return parseCast(row), nil
}

// Create inserts a new cast and fills in its store-assigned id and timestamps.
func (r *CastRepository) Create(ctx context.Context, cast *model.Cast) error {
	query := `CREATE cast CONTENT {
		title: $title,
		youtube_url: $youtube_url,
		thumbnail: $thumbnail,
		description: $description,
		created_at: time::now(),
		updated_at: time::now()
	}`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"title":       cast.Title,
		"youtube_url": cast.YoutubeURL,
		"thumbnail":   cast.Thumbnail,
		"description": cast.Description,
	})
	if err != nil {
		return normalizeStoreError(err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		return fmt.Errorf("create cast: %w", err)
	}
	*cast = *parseCast(row)
	return nil
}

// Update applies the given store-field changes and returns the updated cast,
// or nil when the record does not exist.
func (r *CastRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Cast, error) {
	if !validRecordID(id, "cast") {
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
		return nil, fmt.Errorf("update cast: %w", err)
	}
	return parseCast(row), nil
}

// Delete removes the cast with the given id. Deleting a missing record is not
// an error here; callers check existence first.
func (r *CastRepository) Delete(ctx context.Context, id string) error {
	if !validRecordID(id, "cast") {
		return nil
	}
	if err := r.db.Execute(ctx, `DELETE type::record($id)`, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("delete cast: %w", err)
	}
	return nil
}

// FindByTitle returns a cast whose title matches case-insensitively, or nil.
// When excludeID is set, that record is skipped (used on updates to allow a
// record to keep its own title).
func (r *CastRepository) FindByTitle(ctx context.Context, title, excludeID string) (*model.Cast, error) {
	query := `SELECT * FROM cast WHERE string::lowercase(title) = string::lowercase($title)`
	vars := map[string]interface{}{"title": title}
	if excludeID != "" {
		query += ` AND id != type::record($exclude)`
		vars["exclude"] = excludeID
	}
	query += ` LIMIT 1`

	return r.findOne(ctx, query, vars)
}

// FindByYoutubeURL returns a cast with the exact YouTube link, or nil.
func (r *CastRepository) FindByYoutubeURL(ctx context.Context, url, excludeID string) (*model.Cast, error) {
	query := `SELECT * FROM cast WHERE youtube_url = $url`
	vars := map[string]interface{}{"url": url}
	if excludeID != "" {
		query += ` AND id != type::record($exclude)`
		vars["exclude"] = excludeID
	}
	query += ` LIMIT 1`

	return r.findOne(ctx, query, vars)
}

func (r *CastRepository) findOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Cast, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cast: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cast: %w", err)
	}
	return parseCast(row), nil
}

func parseCast(row map[string]interface{}) *model.Cast {
	return &model.Cast{
		ID:          recordID(row["id"]),
		Title:       getString(row, "title"),
		YoutubeURL:  getString(row, "youtube_url"),
		Thumbnail:   getString(row, "thumbnail"),
		Description: getString(row, "description"),
		CreatedAt:   getTime(row, "created_at"),
		UpdatedAt:   getTime(row, "updated_at"),
	}
}

// buildUpdateQuery assembles an UPDATE ... SET statement from the given
// store-field map. Keys are sorted so the statement text is deterministic.
// A nil value clears the field to NONE (option<T> requires NONE, not NULL,
// and the client cannot encode nil query vars). updated_at is always bumped
// by the store.
func buildUpdateQuery(id string, fields map[string]interface{}) (string, map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys)+1)
	vars := map[string]interface{}{"id": id}
	for _, k := range keys {
		if fields[k] == nil {
			sets = append(sets, k+" = NONE")
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%s", k, k))
		vars[k] = fields[k]
	}
	sets = append(sets, "updated_at = time::now()")

	query := fmt.Sprintf("UPDATE type::record($id) SET %s RETURN AFTER", strings.Join(sets, ", "))
	return query, vars
}
