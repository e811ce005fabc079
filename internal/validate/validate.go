package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail      = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reEmployeeID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)
	reID         = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func EmployeeID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reEmployeeID.MatchString(s)
}

// ID validates a resource identifier (uuid-shaped, but any simple token).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name (person or item).
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Password enforces a length window; bcrypt caps input at 72 bytes.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}

// Quantity bounds a restock delta. Decrements never come through here.
func Quantity(n int) bool {
	return n > 0 && n <= 1000
}
