package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/webshop/backend/internal/domain/identity"
	"github.com/webshop/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByCode finds a user by their public code
func (r *GormUserRepository) FindByCode(ctx context.Context, code string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email (case-insensitive)
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByRole finds all users with the given role
func (r *GormUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	var users []identity.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsByEmail checks whether a user with the email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// CountByRole counts users with the given role
func (r *GormUserRepository) CountByRole(ctx context.Context, role identity.Role) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("role = ?", role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateCode generates the next user code in the USR series
func (r *GormUserRepository) GenerateCode(ctx context.Context) (string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("code LIKE 'USR%'").
		Order("LENGTH(code) DESC, code DESC").
		Limit(1).
		Pluck("code", &codes).Error
	if err != nil {
		return "", err
	}

	next := 1001
	if len(codes) > 0 {
		if n, err := strconv.Atoi(strings.TrimPrefix(codes[0], "USR")); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("USR%d", next), nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
