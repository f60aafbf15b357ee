package services

import (
	"errors"
	"fmt"
	"strings"

	"bus-tracker/internal/tracker-service/core/domain/dto"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleStudent = "student"
	RoleDriver  = "driver"
	RoleAdmin   = "admin"

	MinNameLen = 1
	MaxNameLen = 100

	MinEmailLen = 5
	MaxEmailLen = 100

	MinPasswordLen = 5
	MaxPasswordLen = 50

	HashFactor = 10
)

var AllowedRoles = map[string]bool{
	RoleStudent: true,
	RoleDriver:  true,
	RoleAdmin:   true,
}

var ErrFieldIsEmpty = errors.New("field is empty")

func validateSignup(req dto.SignupRequest) error {
	if err := validateName(req.Name); err != nil {
		return fmt.Errorf("invalid name: %v", err)
	}

	if err := validateEmail(req.Email); err != nil {
		return fmt.Errorf("invalid email: %v", err)
	}

	if err := validatePassword(req.Password); err != nil {
		return fmt.Errorf("invalid password: %v", err)
	}

	if !AllowedRoles[req.Role] {
		return fmt.Errorf("unknown role: %q", req.Role)
	}

	return nil
}

func validateLogin(email, password string) error {
	if err := validateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %v", err)
	}

	if err := validatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %v", err)
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrFieldIsEmpty
	}
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return fmt.Errorf("length must be between %d and %d", MinNameLen, MaxNameLen)
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrFieldIsEmpty
	}
	if len(email) < MinEmailLen || len(email) > MaxEmailLen {
		return fmt.Errorf("length must be between %d and %d", MinEmailLen, MaxEmailLen)
	}
	if !strings.Contains(email, "@") {
		return errors.New("missing @")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrFieldIsEmpty
	}
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return fmt.Errorf("length must be between %d and %d", MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashFactor)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
