package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// bcrypt input is capped at 72 bytes.
const maxPasswordBytes = 72

// Registration is the input of Register.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     bnccdoc.Role
	School   string
}

// Service registers users and exchanges credentials for tokens.
type Service struct {
	users  store.UserRepository
	tokens *TokenManager
	cost   int
}

// NewService creates a Service.
func NewService(users store.UserRepository, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register creates a user with a bcrypt password hash. Returns
// store.ErrDuplicateEmail when the email is taken.
func (s *Service) Register(ctx context.Context, r Registration) (*bnccdoc.User, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.TrimSpace(r.Email)
	switch {
	case name == "" || email == "" || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: name and a valid email are required", ErrInvalidInput)
	case r.Password == "" || len(r.Password) > maxPasswordBytes:
		return nil, fmt.Errorf("%w: password must be 1 to %d bytes", ErrInvalidInput, maxPasswordBytes)
	case !r.Role.Valid():
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, r.Role)
	}

	hash, err := HashPassword(r.Password, s.cost)
	if err != nil {
		return nil, err
	}

	u := &bnccdoc.User{Name: name, Email: email, Role: r.Role, School: strings.TrimSpace(r.School)}
	if err := s.users.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues an access token. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *bnccdoc.User, error) {
	u, hash, err := s.users.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Tokens returns the manager used to verify tokens issued by Login.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// HashPassword hashes password with bcrypt at cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
