package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob42", "under_score", "with-hyphen", "abc"}
	for _, name := range valid {
		assert.NoError(t, ValidateUsername(name), name)
	}

	invalid := []string{
		"",
		"ab",
		strings.Repeat("a", 25),
		"UpperCase",
		"has space",
		"emoji🙂",
		"-leading",
		"trailing-",
	}
	for _, name := range invalid {
		assert.Error(t, ValidateUsername(name), name)
	}
}

func TestValidateUsername_Reserved(t *testing.T) {
	for _, name := range []string{"admin", "api", "feed", "posts", "metrics"} {
		assert.ErrorContains(t, ValidateUsername(name), "reserved", name)
	}
}
