// Package validation holds input format rules shared across services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,24}$`)

// Route segments and fixed identifiers that a username must not shadow.
var reservedUsernames = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"feed":     {},
	"follows":  {},
	"health":   {},
	"likes":    {},
	"login":    {},
	"logout":   {},
	"me":       {},
	"metrics":  {},
	"posts":    {},
	"profile":  {},
	"register": {},
	"replies":  {},
	"retweets": {},
	"settings": {},
	"signup":   {},
	"users":    {},
}

// ValidateUsername validates the username format and reserved names.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-24 characters and contain only lowercase letters, numbers, hyphens, and underscores")
	}

	if strings.HasPrefix(username, "-") || strings.HasSuffix(username, "-") {
		return fmt.Errorf("username cannot start or end with a hyphen")
	}

	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}
