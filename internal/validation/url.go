// Package validation checks URLs before the client talks to them or hands
// them to the system browser.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const maxURLLength = 2048

// ValidateBaseURL validates the configured API endpoint and returns it
// normalized without a trailing slash.
func ValidateBaseURL(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("base URL cannot be empty")
	}
	if len(input) > maxURLLength {
		return "", fmt.Errorf("base URL too long (max %d characters)", maxURLLength)
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("base URL must have a hostname")
	}
	if parsed.User != nil {
		return "", fmt.Errorf("base URL must not carry credentials")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String(), nil
}

// ValidateArticleLink checks a link received from the API before it is opened
// in the system browser. Only http and https schemes are acceptable; anything
// else (javascript:, file:, data:) is refused.
func ValidateArticleLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("article has no link")
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid article link: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("refusing to open link with scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("article link has no hostname")
	}
	return nil
}
