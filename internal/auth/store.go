package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cinemax/internal/logger"
	"cinemax/internal/models"
	"cinemax/internal/orders/db"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNoCurrentUser      = errors.New("no authenticated user")
)

// UserStore is the persistence consumed by the auth store.
type UserStore interface {
	SaveUser(user models.User) error
	GetUserByEmail(email string) (*models.User, error)
	SaveOrder(order models.Order) error
}

// Store holds the current authenticated user for the session. Authentication
// is mocked: any email with a long-enough password signs in, with a
// simulated network delay.
type Store struct {
	mu   sync.Mutex
	user *models.User

	db     UserStore
	logger *logger.Logger
	delay  time.Duration
}

func NewStore(userDB UserStore, log *logger.Logger, loginDelay time.Duration) *Store {
	return &Store{
		db:     userDB,
		logger: log,
		delay:  loginDelay,
	}
}

// Login signs a user in, creating the account on first sight of the email.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	if err := s.simulateNetwork(ctx); err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByEmail(email)
	if errors.Is(err, db.ErrUserNotFound) {
		user = &models.User{
			ID:        uuid.NewString(),
			Name:      displayNameFromEmail(email),
			Email:     email,
			CreatedAt: time.Now(),
			Purchases: []models.Order{},
		}
	} else if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	user.LastLogin = time.Now()
	if err := s.db.SaveUser(*user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.LogAuth("LOGIN", user.Email)
	}
	return s.CurrentUser(), nil
}

// Register creates a fresh account and signs it in.
func (s *Store) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if err := s.simulateNetwork(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		LastLogin: now,
		Purchases: []models.Order{},
	}

	if err := s.db.SaveUser(*user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.LogAuth("REGISTER", user.Email)
	}
	return s.CurrentUser(), nil
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil && s.logger != nil {
		s.logger.LogAuth("LOGOUT", s.user.Email)
	}
	s.user = nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}

	user := *s.user
	user.Purchases = make([]models.Order, len(s.user.Purchases))
	copy(user.Purchases, s.user.Purchases)
	return &user
}

// AddPurchaseToHistory prepends the order to the current user's purchases
// (most-recent first) and persists both the order and the account.
func (s *Store) AddPurchaseToHistory(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNoCurrentUser
	}

	if err := s.db.SaveOrder(order); err != nil {
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}

	s.user.Purchases = append([]models.Order{order}, s.user.Purchases...)
	if err := s.db.SaveUser(*s.user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	return nil
}

func (s *Store) simulateNetwork(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func displayNameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return local
	}
	return b.String()
}
