package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	attrs := UserAttributes{
		Username:  "wanjiku",
		Email:     "wanjiku.kamau@example.com",
		FirstName: "Wanjiku",
		LastName:  "Kamau",
	}

	tests := []struct {
		name     string
		password string
		contains string
	}{
		{"too short", "aB3$xy", "too short"},
		{"entirely numeric", "9876543210", "entirely numeric"},
		{"common", "Password123", "too common"},
		{"similar to username", "wanjiku1", "similar to the username"},
		{"similar to last name", "kamau123", "similar to the"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := ValidatePassword(tt.password, attrs)
			if assert.NotEmpty(t, problems) {
				joined := ""
				for _, p := range problems {
					joined += p + " "
				}
				assert.Contains(t, joined, tt.contains)
			}
		})
	}

	t.Run("strong password passes", func(t *testing.T) {
		assert.Empty(t, ValidatePassword("Tr4vel-Mombasa-Sunrise", attrs))
	})

	t.Run("multiple violations reported together", func(t *testing.T) {
		problems := ValidatePassword("1234", attrs)
		assert.Len(t, problems, 2)
	})
}

func TestQuickRatio(t *testing.T) {
	assert.Equal(t, 1.0, quickRatio("abc", "cba"))
	assert.Equal(t, 0.0, quickRatio("abc", "xyz"))
	assert.InDelta(t, 0.5, quickRatio("ab", "ax"), 0.001)
}
