package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"techquiz-core/models"
)

var validate = validator.New()

const (
	msgInvalidCredentials = "Invalid Credentials"
	minPasswordLength     = 6
)

// Rules holds the tunable parts of identifier classification. The zero
// value is not usable; start from DefaultRules.
type Rules struct {
	PhoneMinDigits int
	PhoneMaxDigits int
}

var DefaultRules = Rules{PhoneMinDigits: 7, PhoneMaxDigits: 15}

// Result is a structured validation outcome. Malformed input never panics;
// it comes back as IsValid=false with a user-facing message.
type Result struct {
	IsValid      bool
	Payload      *models.LoginPayload
	ErrorMessage string
}

// ValidateLoginPayload classifies the identifier as email, phone or
// username and rejects empty credentials. Pure and deterministic, no I/O.
func ValidateLoginPayload(identifier, password string) Result {
	return DefaultRules.ValidateLoginPayload(identifier, password)
}

func (r Rules) ValidateLoginPayload(identifier, password string) Result {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Result{ErrorMessage: msgInvalidCredentials}
	}

	return Result{
		IsValid: true,
		Payload: &models.LoginPayload{
			Identifier: identifier,
			Kind:       r.classify(identifier),
			Password:   password,
		},
	}
}

func (r Rules) classify(identifier string) models.IdentifierKind {
	if validate.Var(identifier, "email") == nil {
		return models.IdentifierEmail
	}
	if isDigits(identifier) && len(identifier) >= r.PhoneMinDigits && len(identifier) <= r.PhoneMaxDigits {
		return models.IdentifierPhone
	}
	return models.IdentifierUsername
}

func isDigits(s string) bool {
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// RegisterResult mirrors Result for the registration form.
type RegisterResult struct {
	IsValid      bool
	Payload      *models.RegisterPayload
	ErrorMessage string
}

// ValidateRegisterPayload checks the registration form: all fields
// required, well-formed email, minimum password length.
func ValidateRegisterPayload(username, email, password string) RegisterResult {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return RegisterResult{ErrorMessage: "Username, email, and password are required"}
	}
	if validate.Var(email, "email") != nil {
		return RegisterResult{ErrorMessage: "Invalid email address"}
	}
	if len(password) < minPasswordLength {
		return RegisterResult{ErrorMessage: "Password must be at least 6 characters"}
	}

	return RegisterResult{
		IsValid: true,
		Payload: &models.RegisterPayload{
			Username: username,
			Email:    email,
			Password: password,
		},
	}
}
