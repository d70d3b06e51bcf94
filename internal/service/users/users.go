package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mgarrido/tienda/internal/hash"
	"github.com/mgarrido/tienda/internal/logging"
	"github.com/mgarrido/tienda/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	// ErrDuplicateEmail means the email is already registered. Emails
	// are compared exactly, matching the unique column.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password, so login responses cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	DB *gorm.DB
}

// Identity is what callers get back after a successful login: never
// the password hash.
type Identity struct {
	ID     uint
	Nombre string
	Email  string
}

func (s *Service) Register(ctx context.Context, nombre, email, password string) (*Identity, error) {
	l := logging.FromContext(ctx).With("svc", "users.register")

	if nombre == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: todos los campos son obligatorios", ErrValidation)
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "reason", "db lookup failed", "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{Nombre: nombre, Email: email, PasswordHash: pwHash}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("register_error", "reason", "db insert failed", "error", err)
		return nil, err
	}
	return &Identity{ID: user.ID, Nombre: user.Nombre, Email: user.Email}, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	l := logging.FromContext(ctx).With("svc", "users.authenticate")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: todos los campos son obligatorios", ErrValidation)
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("authenticate_error", "reason", "db lookup failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &Identity{ID: user.ID, Nombre: user.Nombre, Email: user.Email}, nil
}
