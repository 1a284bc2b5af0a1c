package identity

import "context"

// UserRepository defines the persistence interface for users
type UserRepository interface {
	// FindByCode finds a user by their public code
	FindByCode(ctx context.Context, code string) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByRole finds all users with the given role
	FindByRole(ctx context.Context, role Role) ([]User, error)

	// ExistsByEmail checks whether a user with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// CountByRole counts users with the given role
	CountByRole(ctx context.Context, role Role) (int64, error)

	// GenerateCode generates a unique public user code
	GenerateCode(ctx context.Context) (string, error)
}
