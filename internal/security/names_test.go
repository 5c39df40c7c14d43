package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{
		"myapp",
		"db_password",
		"api-token",
		"backup.2024",
		"MixedCase123",
	}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q): unexpected error %v", name, err)
		}
	}

	invalid := []string{
		"",
		".",
		"..",
		".hidden",
		"a/b",
		`a\b`,
		"../escape",
		"/etc/passwd",
		strings.Repeat("x", 201),
		"nul\x00byte",
	}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q): expected error, got nil", name)
		}
	}
}

func TestValidateNameSentinels(t *testing.T) {
	if err := ValidateName(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if err := ValidateName("a/b"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}
