package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/webshop/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the role of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a registered customer or administrator
// It is the aggregate root for identity operations
type User struct {
	shared.BaseAggregateRoot
	Code         string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(200);not null" json:"-"`
	Phone        string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:varchar(500)"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the default "user" role
func NewUser(code, name, email, password, phone, address string) (*User, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "User code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Phone:             strings.TrimSpace(phone),
		Address:           strings.TrimSpace(address),
		Role:              RoleUser,
	}, nil
}

// NewAdmin creates a new user with the admin role
func NewAdmin(code, name, email, password string) (*User, error) {
	user, err := NewUser(code, name, email, password, "", "")
	if err != nil {
		return nil, err
	}

	user.Role = RoleAdmin
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// validateEmail validates the email format
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

// validatePassword validates the plaintext password
func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

// hashPassword hashes a plaintext password with bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
