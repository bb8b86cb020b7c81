package user

import (
	"errors"
	"time"
)

// User is a registered account. The password hash never leaves the package
// boundary in API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Page is one page of users plus the total matching count.
type Page struct {
	Users []User
	Total int
	Page  int
	Limit int
}

var (
	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid user id")
	// ErrNameRequired is returned when the name field is empty.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidEmail is returned when the email field is missing an "@".
	ErrInvalidEmail = errors.New("invalid email")
	// ErrPasswordTooShort is returned for passwords under six characters.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound is returned when no user matches the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidPagination is returned when page or limit is below one.
	ErrInvalidPagination = errors.New("invalid pagination")
)
