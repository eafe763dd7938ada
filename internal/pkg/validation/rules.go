package validation

import (
	"regexp"
	"strings"

	"github.com/lumina-app/lumina/internal/app/models"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Login codes are exactly six digits
	LoginCodePattern = `^\d{6}$`

	// Username length bounds
	UsernameMinLength = 2
	UsernameMaxLength = 50
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	LoginCode *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	LoginCode: regexp.MustCompile(LoginCodePattern),
}

// ValidEmail reports whether email looks like a deliverable address
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ValidLoginCode reports whether code has the expected six-digit shape.
// Wrong-length codes are rejected here before any store lookup happens.
func ValidLoginCode(code string) bool {
	return CompiledPatterns.LoginCode.MatchString(code)
}

// ValidUsername reports whether name fits the display-name bounds after trimming
func ValidUsername(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= UsernameMinLength && len(trimmed) <= UsernameMaxLength
}

// NormalizeComment trims text and reports whether the result is acceptable:
// non-empty and within the length ceiling.
func NormalizeComment(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len([]rune(trimmed)) > models.CommentMaxLength {
		return trimmed, false
	}
	return trimmed, true
}
