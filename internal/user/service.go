package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, term string, limit, offset int) ([]User, error)
	CountSearch(ctx context.Context, term string) (int, error)
}

// Service implements account creation, lookup and paginated listing.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new account. The password is hashed with bcrypt before
// it is persisted; the plaintext is never stored.
func (s *Service) Create(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.store.Insert(ctx, User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	return err
}

// GetByID returns a single user.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return User{}, ErrInvalidID
	}
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u == nil {
		return User{}, ErrNotFound
	}
	return *u, nil
}

// List returns one page of users in insertion order plus the total count.
func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	if page < 1 || limit < 1 {
		return Page{}, ErrInvalidPagination
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return Page{}, err
	}
	users, err := s.store.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return Page{}, err
	}
	if users == nil {
		users = []User{}
	}
	return Page{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// Search returns one page of users whose name or email contains term,
// newest first. An empty term matches everyone.
func (s *Service) Search(ctx context.Context, page, limit int, term string) (Page, error) {
	if page < 1 || limit < 1 {
		return Page{}, ErrInvalidPagination
	}
	total, err := s.store.CountSearch(ctx, term)
	if err != nil {
		return Page{}, err
	}
	users, err := s.store.Search(ctx, term, limit, (page-1)*limit)
	if err != nil {
		return Page{}, err
	}
	if users == nil {
		users = []User{}
	}
	return Page{Users: users, Total: total, Page: page, Limit: limit}, nil
}
