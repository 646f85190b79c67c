package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// usernameRegex: 3-20 letters, digits, underscore
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)

	skkuDomains = []string{"@skku.edu", "@g.skku.edu"}
)

func ValidateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// ValidatePassword requires at least one letter and one digit; length is checked by min/max tags
func ValidatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return letterRegex.MatchString(password) && digitRegex.MatchString(password)
}

// ValidateNotBlank rejects strings made only of whitespace; required alone lets "   " through
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IsSkkuEmail reports whether email belongs to a Sungkyunkwan University domain
func IsSkkuEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, domain := range skkuDomains {
		if strings.HasSuffix(email, domain) {
			return true
		}
	}
	return false
}
