package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// playerIDRegex matches TETR.IO user ids (24 hex chars) and usernames.
var playerIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,24}$`)

// ValidatePlayerID validates a player id or username before it is placed in
// an API URL.
func ValidatePlayerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPlayer, "player id cannot be empty")
	}
	if !playerIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPlayer, "invalid player id: %q", id)
	}
	return nil
}

// tournamentIDRegex matches numeric tournament ids.
var tournamentIDRegex = regexp.MustCompile(`^[0-9]{1,12}$`)

// ValidateTournamentID validates a donation page tournament id.
func ValidateTournamentID(id string) error {
	if !tournamentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid tournament id: %q", id)
	}
	return nil
}

// ValidateAssetName validates an asset file name relative to the asset
// directory. It rejects absolute paths and traversal.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 characters
//   - No control characters
//   - No absolute paths, no "..", no backslashes
func ValidateAssetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "asset name cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "asset name too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "asset name contains invalid characters")
		}
	}
	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidPath, "asset name must be relative")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "asset name cannot contain path traversal sequences (..)")
	}
	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidPath, "asset name cannot contain backslashes")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
