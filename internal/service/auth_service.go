package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/ids"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/security"
)

const MinPasswordLength = 6

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type TokenIssuer interface {
	Issue(userID string, email string, role string) (string, error)
}

type PasswordHasher func(password string) ([]byte, error)

type PasswordVerifier func(password string, encodedHash []byte) (bool, error)

// decoyPassword is hashed once per service so that logins for unknown
// emails spend the same time in the verifier as a wrong password does.
const decoyPassword = "kuja-twende-decoy-password"

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	hash   PasswordHasher
	verify PasswordVerifier
	log    zerolog.Logger

	decoyOnce sync.Once
	decoyHash []byte
}

func NewAuthService(users UserStore, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hash:   security.HashPassword,
		verify: security.VerifyPassword,
		log:    log,
	}
}

// WithHasher swaps the password hash function, e.g. for cheaper parameters.
func (s *AuthService) WithHasher(hash PasswordHasher) *AuthService {
	s.hash = hash
	return s
}

func (s *AuthService) WithVerifier(verify PasswordVerifier) *AuthService {
	s.verify = verify
	return s
}

func (s *AuthService) decoy() []byte {
	s.decoyOnce.Do(func() {
		hash, err := s.hash(decoyPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("hash decoy password")
			return
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  models.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, invalid("Name, email, and password are required")
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return AuthResult{}, invalid(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}

	passwordHash, err := s.hash(input.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         models.UserRoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return AuthResult{}, err
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed up")

	return AuthResult{Token: token, User: user}, nil
}

// Login never tells the caller whether the email exists: an unknown email
// and a wrong password both yield ErrInvalidCredentials after one password
// verification.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, invalid("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			if decoy := s.decoy(); decoy != nil {
				_, _ = s.verify(input.Password, decoy)
			}
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.verify(input.Password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored password hash unreadable")
		return AuthResult{}, ErrInvalidCredentials
	}
	if !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}
