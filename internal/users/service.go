package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 8

// Service resolves identities and manages accounts.
type Service struct {
	repo Repository
	cost int

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// ByEmail returns the user or ErrUserNotFound. email is matched
// case-insensitively, the way Register stores it.
func (s *Service) ByEmail(ctx context.Context, email string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, ErrUserNotFound
	}
	return s.repo.FindByEmail(ctx, email)
}

// ByID returns the user or ErrUserNotFound.
func (s *Service) ByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, fmt.Errorf("%w: email", ErrInvalidArgument)
	}
	if len(password) < minPasswordLen {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidArgument, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, User{Email: email, PasswordHash: string(hash)})
}

// CheckCredentials returns the user when password matches. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) CheckCredentials(ctx context.Context, email, password string) (User, error) {
	u, err := s.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
