package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	// ErrInvalidToken indicates the bearer token could not be validated.
	ErrInvalidToken = fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
)

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Service handles registration, login and bearer token verification.
type Service struct {
	repo        userRepo
	tokens      *tokenManager
	passwordMin int
}

// New creates a Service signing tokens with secret, valid for ttl.
func New(repo userRepo, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager([]byte(secret), ttl),
		passwordMin: 8,
	}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Session is what a successful login or registration returns.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	var fields []string
	if name == "" {
		fields = append(fields, "Name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, "Please enter a valid email")
	}
	if err := validatePassword(in.Password, s.passwordMin); err != nil {
		fields = append(fields, err.Error())
	}
	if len(fields) > 0 {
		return nil, domain.Invalid("Validation failed", fields...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Invalid("User already exists", "Email is already registered")
		}
		return nil, err
	}
	return s.session(u)
}

// Login validates credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

// Authenticate returns the user id carried by a valid token.
func (s *Service) Authenticate(token string) (string, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Me returns the account behind userID.
func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("User")
		}
		return nil, err
	}
	return u, nil
}

// HashPassword exposes the hashing used for stored credentials.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *Service) session(u *domain.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return fmt.Errorf("Password must be at least %d characters", min)
	}
	hasLetter := false
	hasDigit := false
	for _, r := range p {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("Password must contain at least 1 letter and 1 number")
	}
	return nil
}
