package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password and profile limits.
const (
	MinPasswordLength = 5
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
	MaxEmailLength    = 255
	MaxUserNameLength = 255
)

var fieldValidator = validator.New()

// User represents a registered account. Every product, category and stock row
// is owned by exactly one user.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	IsActive       bool      `json:"is_active"`
	IsStaff        bool      `json:"is_staff"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates an active, non-staff User with a normalized email.
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, name, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		Password:  password,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the domain part.
// The local part is kept as given since mailbox names may be case-sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// Validate checks if the User has valid data. All invalid fields are reported
// together in a *ValidationError.
func (u *User) Validate() error {
	fields := map[string]string{}

	if u.ID == uuid.Nil {
		fields["id"] = "is required"
	}

	switch {
	case u.Email == "":
		fields["email"] = "is required"
	case len(u.Email) > MaxEmailLength:
		fields["email"] = "is too long"
	case fieldValidator.Var(u.Email, "email") != nil:
		fields["email"] = "is not a valid email address"
	}

	if len(u.Name) > MaxUserNameLength {
		fields["name"] = "is too long"
	}

	if u.Password != "" {
		switch {
		case len(u.Password) < MinPasswordLength:
			fields["password"] = "is too short"
		case len(u.Password) > MaxPasswordLength:
			fields["password"] = "is too long"
		}
	} else if u.HashedPassword == "" {
		fields["password"] = "is required"
	}

	return ValidationErrorFromFields(fields)
}
