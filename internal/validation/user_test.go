package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "secret12", false},
		{"Exactly Min Length", "abcdef", false},
		{"Exactly Max Length", strings.Repeat("b", 72), false},
		{"Empty", "", true},
		{"Too Short", "abc", true},
		{"Too Long", strings.Repeat("b", 73), true},
		{"Unicode Counts Runes", "ÅÅÅÅÅÅ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "test_user123", false},
		{"Hyphen Inside", "a-b", false},
		{"Empty", "", true},
		{"Too Short", "tu", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "user@123", true},
		{"Space", "user name", true},
		{"Starts Dash", "-user", true},
		{"Ends Underscore", "user_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateContent("hello"))
	assert.Error(t, ValidateContent(""))
	assert.Error(t, ValidateContent("   \n\t"))
	assert.NoError(t, ValidateContent(strings.Repeat("x", MaxContentLen)))
	assert.Error(t, ValidateContent(strings.Repeat("x", MaxContentLen+1)))
}

func TestValidateProfile(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateProfile("", ""))
	assert.NoError(t, ValidateProfile("about me", "https://example.com/me.png"))
	assert.Error(t, ValidateProfile(strings.Repeat("b", 501), ""))
	assert.Error(t, ValidateProfile("", "https://example.com/"+strings.Repeat("a", 2048)))
}
