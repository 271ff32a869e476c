package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
)

// Service handles operator registration and login.
type Service struct {
	repo       *Repository
	issuer     string
	signingKey string
	accessTTL  time.Duration
}

// NewService creates a service backed by a user repository.
func NewService(repo *Repository, issuer, signingKey string, accessTTL time.Duration) *Service {
	return &Service{repo: repo, issuer: issuer, signingKey: signingKey, accessTTL: accessTTL}
}

// Register creates a new operator account. Role defaults to faculty.
func (s *Service) Register(ctx context.Context, fullName, email, password, role string) (User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" || password == "" {
		return User{}, apperr.Validation("full_name, email and password are required")
	}
	if role == "" {
		role = RoleFaculty
	}
	if role != RoleAdmin && role != RoleFaculty {
		return User{}, apperr.Validation("unknown role %q", role)
	}

	existing, _, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	if existing != nil {
		return User{}, apperr.Duplicate("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u, err := s.repo.Create(ctx, fullName, email, string(hash), role)
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	return u, nil
}

// LoginResult is the signed session returned to a caller.
type LoginResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, apperr.Validation("email and password are required")
	}
	u, hash, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, apperr.Storage(err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return LoginResult{}, apperr.Validation("invalid email or password")
	}
	token, exp, err := Issue(u.ID, u.Role, s.issuer, s.signingKey, s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: *u, Token: token, ExpiresAt: exp}, nil
}

// Me returns the account behind a set of claims.
func (s *Service) Me(ctx context.Context, userID int) (User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	if u == nil {
		return User{}, apperr.NotFound("user not found")
	}
	return *u, nil
}

// EnsureAdmin seeds the initial admin account when configured and missing.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, _, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if _, err := s.Register(ctx, "System Administrator", email, password, RoleAdmin); err != nil {
		return err
	}
	log.Printf("seeded admin user %s", email)
	return nil
}
