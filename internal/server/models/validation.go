package models

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Password bounds are in bytes; bcrypt refuses input past 72 bytes.
const (
	MinPasswordBytes = 6
	MaxPasswordBytes = 72
)

// EmailPattern is a format check only; deliverability is not probed.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailRule checks the shape of an email address.
var EmailRule = validation.Match(EmailPattern).Error("must be a valid email address")

// ValidateRegistration checks the account fields shared by every way of
// creating a user. The role is checked separately by ParseRole.
func ValidateRegistration(username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	return validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.RuneLength(1, 100)),
		"email":    validation.Validate(email, validation.Required, EmailRule, validation.RuneLength(0, 255)),
		"password": validation.Validate(password, validation.Required, validation.Length(MinPasswordBytes, MaxPasswordBytes)),
	}.Filter()
}
