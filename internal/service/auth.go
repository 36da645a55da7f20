package service

import (
	"context"
	"fmt"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/owakeel/golf-music-backend/internal/email"
	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/validation"
)

const bcryptCost = 12

// UserRepository defines the persistence operations the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenIssuer mints bearer credentials bound to a user identity.
type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
	mailer email.Sender
}

// NewAuthService creates a new auth service.
func NewAuthService(repo UserRepository, tokens TokenIssuer, mailer email.Sender) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, mailer: mailer}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
	Genre    string `json:"genre"`
	Location string `json:"location"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult pairs a freshly issued token with the account it belongs to.
type AuthResult struct {
	Token string
	User  *model.User
}

// userTypeValues feeds the accepted user types into the In rule.
var userTypeValues = func() []interface{} {
	vs := make([]interface{}, len(model.UserTypes))
	for i, t := range model.UserTypes {
		vs[i] = string(t)
	}
	return vs
}()

// profileFieldRequirements maps each conditionally required profile field to
// its client-facing messages.
var profileFieldRequirements = map[string]struct {
	message      string
	fieldMessage string
}{
	"genre":    {"Genre is required for artists", "Please select a genre"},
	"location": {"Location is required for venues and journalists", "Please select a valid location"},
}

// Register runs the full registration pipeline: validation, the
// email-or-username duplicate check, role-conditional profile requirements,
// account creation, verification mail for non-fan types (with rollback on
// delivery failure) and token issuance.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if errs := validation.Run(
		validation.Field{Name: "username", Value: in.Username, Rules: []ozzo.Rule{
			ozzo.Required.Error("Username is required"),
			ozzo.Length(3, 30).Error("Username must be between 3 and 30 characters"),
		}},
		validation.Field{Name: "email", Value: in.Email, Rules: []ozzo.Rule{
			ozzo.Required.Error("Email is required"),
			is.Email.Error("Please provide a valid email"),
		}},
		validation.Field{Name: "password", Value: in.Password, Rules: []ozzo.Rule{
			ozzo.Required.Error("Password is required"),
			ozzo.Length(6, 0).Error("Password must be at least 6 characters"),
		}},
		validation.Field{Name: "userType", Value: in.UserType, Rules: []ozzo.Rule{
			ozzo.Required.Error("User type is required"),
			ozzo.In(userTypeValues...).Error("Please select a valid user type"),
		}},
	); errs != nil {
		return nil, &ValidationError{Message: "Please correct the highlighted fields", Fields: errs}
	}

	existing, err := s.repo.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("register duplicate check: %w", err)
	}
	if existing != nil {
		// Email takes precedence when the account matches on both.
		fieldErr := model.FieldError{Field: "username", Message: "This username is already taken"}
		if existing.Email == in.Email {
			fieldErr = model.FieldError{Field: "email", Message: "This email is already registered"}
		}
		return nil, &ConflictError{
			Message: "User with this email or username already exists",
			Fields:  []model.FieldError{fieldErr},
		}
	}

	userType := model.UserType(in.UserType)
	provided := map[string]string{"genre": in.Genre, "location": in.Location}
	for _, field := range model.RequiredProfileFields[userType] {
		if provided[field] != "" {
			continue
		}
		req := profileFieldRequirements[field]
		return nil, &ValidationError{
			Message: req.message,
			Fields:  []model.FieldError{{Field: field, Message: req.fieldMessage}},
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:              in.Username,
		Email:                 in.Email,
		Hash:                  string(hash),
		UserType:              userType,
		Role:                  model.UserRoleUser,
		Genre:                 in.Genre,
		Location:              in.Location,
		VerificationRequested: userType.RequiresVerification(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if userType.RequiresVerification() {
		if err := s.mailer.SendVerification(ctx, user.Email, user.Username, string(user.UserType)); err != nil {
			// Rollback: the account must not exist without its
			// verification request having gone out.
			_ = s.repo.Delete(ctx, user.ID)
			return nil, ErrEmailDelivery
		}
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the credentials and issues a token. Whether the email or
// the password was wrong is carried only as a field tag; the outward message
// is identical for both.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if errs := validation.Run(
		validation.Field{Name: "email", Value: in.Email, Rules: []ozzo.Rule{
			ozzo.Required.Error("Email is required"),
			is.Email.Error("Please provide a valid email"),
		}},
		validation.Field{Name: "password", Value: in.Password, Rules: []ozzo.Rule{
			ozzo.Required.Error("Password is required"),
		}},
	); errs != nil {
		return nil, &ValidationError{Message: "Please correct the highlighted fields", Fields: errs}
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		return nil, &CredentialsError{Field: "email", FieldMessage: "No account found with this email"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(in.Password)); err != nil {
		return nil, &CredentialsError{Field: "password", FieldMessage: "Incorrect password"}
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Profile returns the account behind an already-authenticated identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
