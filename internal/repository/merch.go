package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/owakeel/golf-music-backend/internal/database"
	"github.com/owakeel/golf-music-backend/internal/model"
)

// MerchRepository handles persistence for merchandise items.
type MerchRepository struct {
	db database.Database
}

// NewMerchRepository creates a new merch repository.
func NewMerchRepository(db database.Database) *MerchRepository {
	return &MerchRepository{db: db}
}

// List returns all merch items, newest first.
func (r *MerchRepository) List(ctx context.Context) ([]*model.Merch, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM merch ORDER BY created_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list merch: %w", err)
	}

	rows := rowsFromResult(results)
	items := make([]*model.Merch, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseMerch(row))
	}
	return items, nil
}

// GetByID returns the merch item with the given id, or nil when it does not
// exist. A malformed id is treated the same as a missing record.
func (r *MerchRepository) GetByID(ctx context.Context, id string) (*model.Merch, error) {
	if !validRecordID(id, "merch") {
		return nil, nil
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merch: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merch: %w", err)
	}
	return parseMerch(row), nil
}

// Create inserts a new merch item and fills in its store-assigned id and
// timestamps. The Printify id is appended only when set (option<string>
// requires NONE, not NULL, so absent fields are omitted entirely).
func (r *MerchRepository) Create(ctx context.Context, item *model.Merch) error {
	query := `CREATE merch SET
		name = $name,
		price = $price,
		image = $image,
		created_at = time::now(),
		updated_at = time::now()`
	vars := map[string]interface{}{
		"name":  item.Name,
		"price": item.Price,
		"image": item.Image,
	}
	if item.PrintifyID != "" {
		query += `, printify_id = $printify_id`
		vars["printify_id"] = item.PrintifyID
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return normalizeStoreError(err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		return fmt.Errorf("create merch: %w", err)
	}
	*item = *parseMerch(row)
	return nil
}

// Update applies the given store-field changes and returns the updated item,
// or nil when the record does not exist.
func (r *MerchRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Merch, error) {
	if !validRecordID(id, "merch") {
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
		return nil, fmt.Errorf("update merch: %w", err)
	}
	return parseMerch(row), nil
}

// Delete removes the merch item with the given id.
func (r *MerchRepository) Delete(ctx context.Context, id string) error {
	if !validRecordID(id, "merch") {
		return nil
	}
	if err := r.db.Execute(ctx, `DELETE type::record($id)`, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("delete merch: %w", err)
	}
	return nil
}

// FindByName returns a merch item whose name matches case-insensitively, or
// nil. When excludeID is set, that record is skipped.
func (r *MerchRepository) FindByName(ctx context.Context, name, excludeID string) (*model.Merch, error) {
	query := `SELECT * FROM merch WHERE string::lowercase(name) = string::lowercase($name)`
	vars := map[string]interface{}{"name": name}
	if excludeID != "" {
		query += ` AND id != type::record($exclude)`
		vars["exclude"] = excludeID
	}
	query += ` LIMIT 1`

	return r.findOne(ctx, query, vars)
}

// FindByPrintifyID returns a merch item with the exact Printify id, or nil.
func (r *MerchRepository) FindByPrintifyID(ctx context.Context, printifyID, excludeID string) (*model.Merch, error) {
	query := `SELECT * FROM merch WHERE printify_id = $printify_id`
	vars := map[string]interface{}{"printify_id": printifyID}
	if excludeID != "" {
		query += ` AND id != type::record($exclude)`
		vars["exclude"] = excludeID
	}
	query += ` LIMIT 1`

	return r.findOne(ctx, query, vars)
}

func (r *MerchRepository) findOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Merch, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find merch: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find merch: %w", err)
	}
	return parseMerch(row), nil
}

func parseMerch(row map[string]interface{}) *model.Merch {
	return &model.Merch{
		ID:         recordID(row["id"]),
		Name:       getString(row, "name"),
		Price:      getString(row, "price"),
		Image:      getString(row, "image"),
		PrintifyID: getString(row, "printify_id"),
		CreatedAt:  getTime(row, "created_at"),
		UpdatedAt:  getTime(row, "updated_at"),
	}
}
