package validation

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxSimilarity     = 0.7
)

// commonPasswords holds the most frequently leaked passwords, lowercased.
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range []string{
		"password", "password1", "password12", "password123", "passw0rd", "p@ssw0rd",
		"12345678", "123456789", "1234567890", "87654321", "11111111", "00000000",
		"qwertyui", "qwerty123", "qwertyuiop", "1q2w3e4r", "1qaz2wsx", "zaq12wsx",
		"iloveyou", "sunshine", "princess", "football", "baseball", "superman",
		"trustno1", "welcome1", "welcome123", "letmein1", "monkey123", "dragon123",
		"abc12345", "abcd1234", "asdfghjk", "asdf1234", "computer", "whatever",
		"starwars", "michelle", "jennifer", "jordan23", "master12", "changeme",
		"internet", "shadow12", "access14", "mustang1", "liverpool", "chelsea1",
		"arsenal1", "manchester", "kenya254", "nairobi1", "samsung1", "blink182",
		"q1w2e3r4", "aa123456", "admin123", "administrator", "loveme12", "secret12",
	} {
		commonPasswords[p] = struct{}{}
	}
}

var nonWord = regexp.MustCompile(`\W+`)

// UserAttributes are compared against the password for similarity.
type UserAttributes struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// ValidatePassword applies the password policy and returns every violated
// rule as a message. An empty result means the password is acceptable.
func ValidatePassword(password string, attrs UserAttributes) []string {
	var problems []string

	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		problems = append(problems, "This password is too common.")
	}
	if attr, ok := similarAttribute(password, attrs); ok {
		problems = append(problems, "The password is too similar to the "+attr+".")
	}

	return problems
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func similarAttribute(password string, attrs UserAttributes) (string, bool) {
	candidates := []struct {
		label string
		value string
	}{
		{"username", attrs.Username},
		{"email address", attrs.Email},
		{"first name", attrs.FirstName},
		{"last name", attrs.LastName},
	}

	pw := strings.ToLower(password)
	for _, c := range candidates {
		value := strings.ToLower(c.value)
		if value == "" {
			continue
		}
		parts := append(nonWord.Split(value, -1), value)
		for _, part := range parts {
			if len(part) < 3 {
				continue
			}
			if quickRatio(pw, part) >= maxSimilarity {
				return c.label, true
			}
		}
	}
	return "", false
}

// quickRatio is an upper bound on sequence similarity computed from the
// multiset of shared characters: 2*matches / (len(a)+len(b)).
func quickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	counts := make(map[rune]int, len(rb))
	for _, r := range rb {
		counts[r]++
	}
	matches := 0
	for _, r := range ra {
		if counts[r] > 0 {
			counts[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}
