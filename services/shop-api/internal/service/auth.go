package service

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("password is required")

// Login accepts any email with a non-empty password. It is a placeholder,
// not an authentication mechanism.
func Login(email, password string) (string, error) {
	if password == "" {
		return "", ErrUnauthorized
	}
	return fmt.Sprintf("Login successful for %s", email), nil
}
