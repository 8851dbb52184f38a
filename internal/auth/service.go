package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid operator credentials")

// Service authenticates the restaurant operator. There are no user
// accounts: a single bcrypt hash from the environment guards the admin
// surface (menu reload, order archive).
type Service struct {
	passwordHash []byte
}

func NewService(passwordHash string) *Service {
	return &Service{passwordHash: []byte(passwordHash)}
}

// Login checks the password and mints an ADMIN token.
func (s *Service) Login(operator, password string) (string, error) {
	if operator == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return GenerateToken(operator, "ADMIN")
}
