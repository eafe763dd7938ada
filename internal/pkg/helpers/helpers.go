package helpers

import (
	"math/rand"
	"strings"
	"time"

	"github.com/lumina-app/lumina/internal/app/models"
)

// ParseDuration parses value, falling back to def on any error
func ParseDuration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

// UsernameFromEmail derives the initial display name from an email address
func UsernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// RandomUserColor picks a display color from the palette
func RandomUserColor() string {
	return models.UserColors[rand.Intn(len(models.UserColors))]
}
