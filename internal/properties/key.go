package properties

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var keyPattern = regexp.MustCompile(`^[A-Z_]+[A-Z0-9_]*$`)

// ValidateKey reports whether key can name an environment variable.
// Checks run in a fixed order and the first failure is returned.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key may not be empty", ErrInvalidKey)
	}
	if strings.Contains(key, ".") {
		return fmt.Errorf("%w: key may not contain dots", ErrInvalidKey)
	}
	if first, _ := utf8.DecodeRuneInString(key); unicode.IsDigit(first) {
		return fmt.Errorf("%w: key may not start with a digit", ErrInvalidKey)
	}
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: illegal key %q", ErrInvalidKey, key)
	}
	return nil
}
