package utils

import (
	"regexp"
	"strings"
)

// MaxMetadataSize bounds the free-text metadata carried on a document record
const MaxMetadataSize = 1024 * 1024 // 1MB

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether the string looks like an email address
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NonEmpty reports whether the string has content after trimming whitespace
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
