package auth

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"casepanel/internal/domain/user"
)

// LoginResult carries the signed token produced by a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// Service defines the authentication service interface
type Service interface {
	Register(req user.RegisterRequest) (*user.User, error)
	Login(req user.LoginRequest) (*LoginResult, error)
	Session(token string) *Claims
	HashPassword(password string) (string, error)
	CheckPassword(hashedPassword, password string) bool
}

type service struct {
	userRepo    user.Repository
	codec       *TokenCodec
	tokenExpiry time.Duration
	bcryptCost  int
}

// NewService creates a new auth service
func NewService(userRepo user.Repository, codec *TokenCodec, tokenExpiry time.Duration, bcryptCost int) Service {
	return &service{
		userRepo:    userRepo,
		codec:       codec,
		tokenExpiry: tokenExpiry,
		bcryptCost:  bcryptCost,
	}
}

func (s *service) Register(req user.RegisterRequest) (*user.User, error) {
	if fieldErrs := validateRegistration(req); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	// Pre-check for a friendlier error; the unique index on username is the
	// authoritative guard against concurrent registrations.
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, user.ErrUsernameTaken
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Bootstrap: the first account becomes the panel admin
	role := user.RoleUser
	count, _ := s.userRepo.Count()
	if count == 0 {
		role = user.RoleAdmin
	}

	newUser := &user.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (s *service) Login(req user.LoginRequest) (*LoginResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, user.ErrMissingFields
	}

	// Inactive accounts fail the same way as unknown usernames
	u, err := s.userRepo.GetActiveByUsername(req.Username)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !s.CheckPassword(u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(u.ID, time.Now()); err != nil {
		log.Printf("auth: failed to update last login for %s: %v", u.ID, err)
	}

	token, expiresAt, err := s.codec.Encode(u, s.tokenExpiry)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Session returns the claims carried by the token, or nil if the token is
// absent, malformed, tampered with, or expired. Callers treat nil uniformly
// as "not authenticated".
func (s *service) Session(token string) *Claims {
	if token == "" {
		return nil
	}
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil
	}
	return claims
}

func (s *service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(bytes), err
}

// CheckPassword returns false on any mismatch, including a malformed stored
// hash, so callers cannot distinguish the failure modes.
func (s *service) CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

func validateRegistration(req user.RegisterRequest) user.FieldErrors {
	fieldErrs := user.FieldErrors{}
	if len(req.Username) < 3 || len(req.Username) > 32 {
		fieldErrs["username"] = "username must be 3-32 characters"
	}
	if len(req.Password) < 8 || len(req.Password) > 64 {
		fieldErrs["password"] = "password must be 8-64 characters"
	}
	return fieldErrs
}
