package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/owakeel/golf-music-backend/internal/database"
	"github.com/owakeel/golf-music-backend/internal/model"
)

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the store-assigned id and
// timestamps. Genre and location are appended only when set (option<string>
// requires NONE, not NULL, so absent fields are omitted entirely).
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `CREATE user SET
		username = $username,
		email = $email,
		hash = $hash,
		user_type = $user_type,
		role = $role,
		verification_requested = $verification_requested,
		is_verified = $is_verified,
		created_at = time::now(),
		updated_at = time::now()`
	vars := map[string]interface{}{
		"username":               user.Username,
		"email":                  user.Email,
		"hash":                   user.Hash,
		"user_type":              string(user.UserType),
		"role":                   string(user.Role),
		"verification_requested": user.VerificationRequested,
		"is_verified":            user.IsVerified,
	}
	if user.Genre != "" {
		query += `, genre = $genre`
		vars["genre"] = user.Genre
	}
	if user.Location != "" {
		query += `, location = $location`
		vars["location"] = user.Location
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return normalizeStoreError(err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	*user = *parseUser(row)
	return nil
}

// GetByID returns the user with the given id, or nil when the account does
// not exist. A malformed id is treated the same as a missing record.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !validRecordID(id, "user") {
		return nil, nil
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return parseUser(row), nil
}

// FindByEmail returns the user registered under the given email, including
// the password hash, or nil when no account matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx,
		`SELECT * FROM user WHERE email = $email LIMIT 1`,
		map[string]interface{}{"email": email})
}

// FindByEmailOrUsername returns any account holding either the email or the
// username, or nil. Used by registration to detect conflicts up front.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	return r.findOne(ctx,
		`SELECT * FROM user WHERE email = $email OR username = $username LIMIT 1`,
		map[string]interface{}{"email": email, "username": username})
}

// Delete removes the user with the given id. Registration rolls back the
// freshly created account through this when the verification email fails.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !validRecordID(id, "user") {
		return nil
	}
	if err := r.db.Execute(ctx, `DELETE type::record($id)`, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	row, err := rowFromResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return parseUser(row), nil
}

func parseUser(row map[string]interface{}) *model.User {
	return &model.User{
		ID:                    recordID(row["id"]),
		Username:              getString(row, "username"),
		Email:                 getString(row, "email"),
		Hash:                  getString(row, "hash"),
		UserType:              model.UserType(getString(row, "user_type")),
		Role:                  model.UserRole(getString(row, "role")),
		Genre:                 getString(row, "genre"),
		Location:              getString(row, "location"),
		VerificationRequested: getBool(row, "verification_requested"),
		IsVerified:            getBool(row, "is_verified"),
		CreatedAt:             getTime(row, "created_at"),
		UpdatedAt:             getTime(row, "updated_at"),
	}
}
