package repository

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/owakeel/golf-music-backend/internal/database"
)

var (
	indexErrRe  = regexp.MustCompile("index `([a-zA-Z0-9_]+)`")
	fieldErrRe  = regexp.MustCompile("field `([a-zA-Z0-9_]+)`")
	recordIDRe  = regexp.MustCompile(`^[a-z]+:([A-Za-z0-9_]+|⟨[^⟨⟩]+⟩)$`)
	tablePrefix = []string{"cast_", "merch_", "wave_", "user_"}
)

// validRecordID reports whether id looks like a well-formed record id for
// the given table. Malformed ids are treated as "not found" by callers
// instead of being sent to the store.
func validRecordID(id, table string) bool {
	return strings.HasPrefix(id, table+":") && recordIDRe.MatchString(id)
}

// normalizeStoreError maps raw store failures onto the package database
// error taxonomy: unique-index violations become DuplicateError naming the
// offending field, schema assert violations become SchemaError. Anything
// else passes through untouched.
func normalizeStoreError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()

	if strings.Contains(msg, "already contains") {
		if m := indexErrRe.FindStringSubmatch(msg); m != nil {
			return &database.DuplicateError{Fields: []string{fieldFromIndex(m[1])}}
		}
		return &database.DuplicateError{}
	}
	if strings.Contains(msg, "unique") || strings.Contains(msg, "already exists") {
		return &database.DuplicateError{}
	}
	if strings.Contains(msg, "conform") || strings.Contains(msg, "Found NONE") {
		if m := fieldErrRe.FindStringSubmatch(msg); m != nil {
			return &database.SchemaError{Field: apiFieldName(m[1]), Message: "value does not meet the field constraints"}
		}
	}
	return err
}

// fieldFromIndex turns an index name like "cast_youtube_url" into the API
// field name "youtubeUrl".
func fieldFromIndex(index string) string {
	for _, p := range tablePrefix {
		if strings.HasPrefix(index, p) {
			return apiFieldName(strings.TrimPrefix(index, p))
		}
	}
	return apiFieldName(index)
}

// apiFieldName converts a snake_case store column to the camelCase name the
// API exposes.
func apiFieldName(column string) string {
	parts := strings.Split(column, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// rowsFromResult unwraps a Query response into its record maps.
func rowsFromResult(result []interface{}) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, entry := range result {
		resp, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		records, ok := resp["result"].([]interface{})
		if !ok {
			// A single record outside an array
			if row, ok := resp["result"].(map[string]interface{}); ok {
				rows = append(rows, row)
			}
			continue
		}
		for _, rec := range records {
			if row, ok := rec.(map[string]interface{}); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// rowFromResult unwraps a QueryOne response into a record map.
func rowFromResult(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}
	if resp, ok := result.(map[string]interface{}); ok {
		if records, ok := resp["result"].([]interface{}); ok {
			if len(records) == 0 {
				return nil, database.ErrNotFound
			}
			result = records[0]
		}
	}
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}
	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result format", database.ErrQuery)
	}
	return row, nil
}

// recordID extracts the record id from the store's various id encodings.
func recordID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		if tb, ok := v["tb"].(string); ok {
			if inner, ok := v["id"].(string); ok {
				return tb + ":" + inner
			}
		}
	}
	if data, err := json.Marshal(id); err == nil {
		var rid models.RecordID
		if err := json.Unmarshal(data, &rid); err == nil && rid.Table != "" {
			return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
		}
	}
	return ""
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func getTime(m map[string]interface{}, key string) time.Time {
	switch t := m[key].(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}
