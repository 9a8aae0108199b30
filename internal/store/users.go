package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	bnccdoc "github.com/alnah/go-bnccdoc"
)

// UserRepository is user data access.
type UserRepository interface {
	// Create inserts u with its password hash and sets u.ID.
	// Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *bnccdoc.User, passwordHash string) error
	Get(ctx context.Context, id int64) (*bnccdoc.User, error)
	// Credentials returns the user registered under email and the stored
	// password hash.
	Credentials(ctx context.Context, email string) (*bnccdoc.User, string, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepository backed by GORM.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *bnccdoc.User, passwordHash string) error {
	m := userModel{
		Name:         u.Name,
		Email:        normalizeEmail(u.Email),
		PasswordHash: passwordHash,
		Role:         string(u.Role),
		School:       u.School,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	u.ID = m.ID
	u.Email = m.Email
	return nil
}

func (r *userRepo) Get(ctx context.Context, id int64) (*bnccdoc.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return m.toDomain(), nil
}

func (r *userRepo) Credentials(ctx context.Context, email string) (*bnccdoc.User, string, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, "", notFound(err)
	}
	return m.toDomain(), m.PasswordHash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
