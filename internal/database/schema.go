package database

import (
	"context"
	"fmt"
)

// schemaStatements defines the content tables, their field constraints and
// the unique indexes that back the application-level duplicate checks.
//
// Note the asymmetry: cast, merch and user carry unique indexes as the last
// line of defense against check-then-write races, while wave deliberately
// has none.
var schemaStatements = []string{
	// Casts (podcast episodes)
	`DEFINE TABLE IF NOT EXISTS cast SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS title ON cast TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS youtube_url ON cast TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS thumbnail ON cast TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS description ON cast TYPE string DEFAULT ""`,
	`DEFINE FIELD IF NOT EXISTS created_at ON cast TYPE datetime`,
	`DEFINE FIELD IF NOT EXISTS updated_at ON cast TYPE datetime`,
	`DEFINE INDEX IF NOT EXISTS cast_title ON cast COLUMNS title UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS cast_youtube_url ON cast COLUMNS youtube_url UNIQUE`,

	// Merch
	`DEFINE TABLE IF NOT EXISTS merch SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS name ON merch TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS price ON merch TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS image ON merch TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS printify_id ON merch TYPE option<string>`,
	`DEFINE FIELD IF NOT EXISTS created_at ON merch TYPE datetime`,
	`DEFINE FIELD IF NOT EXISTS updated_at ON merch TYPE datetime`,
	`DEFINE INDEX IF NOT EXISTS merch_name ON merch COLUMNS name UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS merch_printify_id ON merch COLUMNS printify_id UNIQUE`,

	// Waves (open-mic videos) — no unique indexes on purpose
	`DEFINE TABLE IF NOT EXISTS wave SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS title ON wave TYPE string ASSERT string::len($value) > 0 AND string::len($value) <= 200`,
	`DEFINE FIELD IF NOT EXISTS thumbnail ON wave TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS youtube_url ON wave TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS created_at ON wave TYPE datetime`,
	`DEFINE FIELD IF NOT EXISTS updated_at ON wave TYPE datetime`,

	// Users
	`DEFINE TABLE IF NOT EXISTS user SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS username ON user TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS email ON user TYPE string ASSERT string::len($value) > 0`,
	`DEFINE FIELD IF NOT EXISTS hash ON user TYPE string`,
	`DEFINE FIELD IF NOT EXISTS user_type ON user TYPE string ASSERT $value IN ["fan", "artist", "venue", "journalist"]`,
	`DEFINE FIELD IF NOT EXISTS role ON user TYPE string DEFAULT "user" ASSERT $value IN ["user", "admin"]`,
	`DEFINE FIELD IF NOT EXISTS genre ON user TYPE option<string>`,
	`DEFINE FIELD IF NOT EXISTS location ON user TYPE option<string>`,
	`DEFINE FIELD IF NOT EXISTS verification_requested ON user TYPE bool DEFAULT false`,
	`DEFINE FIELD IF NOT EXISTS is_verified ON user TYPE bool DEFAULT false`,
	`DEFINE FIELD IF NOT EXISTS created_at ON user TYPE datetime`,
	`DEFINE FIELD IF NOT EXISTS updated_at ON user TYPE datetime`,
	`DEFINE INDEX IF NOT EXISTS user_email ON user COLUMNS email UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS user_username ON user COLUMNS username UNIQUE`,
}

// DefineSchema applies the table, field and index definitions. Statements are
// idempotent, so it runs on every startup.
func DefineSchema(ctx context.Context, db Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("define schema: %w", err)
		}
	}
	return nil
}
