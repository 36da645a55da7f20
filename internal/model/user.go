package model

import "time"

// UserType classifies an account at registration time and drives which
// profile fields are required and whether a verification email is sent.
type UserType string

const (
	UserTypeFan        UserType = "fan"
	UserTypeArtist     UserType = "artist"
	UserTypeVenue      UserType = "venue"
	UserTypeJournalist UserType = "journalist"
)

// UserTypes lists every accepted user type, in declaration order.
var UserTypes = []UserType{UserTypeFan, UserTypeArtist, UserTypeVenue, UserTypeJournalist}

// Valid reports whether t is one of the accepted user types.
func (t UserType) Valid() bool {
	for _, ut := range UserTypes {
		if t == ut {
			return true
		}
	}
	return false
}

// RequiresVerification reports whether accounts of this type must be
// verified by email before their profile is trusted. Fans never are.
func (t UserType) RequiresVerification() bool {
	return t != UserTypeFan
}

// RequiredProfileFields maps each user type to the extra profile fields that
// must be present at registration.
var RequiredProfileFields = map[UserType][]string{
	UserTypeFan:        nil,
	UserTypeArtist:     {"genre"},
	UserTypeVenue:      {"location"},
	UserTypeJournalist: {"location"},
}

// UserRole separates regular accounts from admins, who alone may mutate the
// content collections.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a registered account. Email and username are each globally
// unique. The password hash is never serialized.
type User struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Hash                  string    `json:"-"`
	UserType              UserType  `json:"userType"`
	Role                  UserRole  `json:"role"`
	Genre                 string    `json:"genre,omitempty"`
	Location              string    `json:"location,omitempty"`
	VerificationRequested bool      `json:"verificationRequested"`
	IsVerified            bool      `json:"isVerified"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// IsAdmin returns true if the user may mutate content collections.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
