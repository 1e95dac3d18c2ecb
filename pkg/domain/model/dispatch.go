package model

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern accepts 16 or more hex digits and hyphens. This is a
// shape check only: hyphen positions, exact length and UUID version are not
// constrained, so "aaaaaaaaaaaaaaaa" passes just like a canonical UUID.
var identifierPattern = regexp.MustCompile(`^[0-9a-fA-F-]{16,}$`)

// NormalizeIdentifier trims surrounding whitespace from a caller-supplied
// identifier.
func NormalizeIdentifier(s string) string {
	return strings.TrimSpace(s)
}

// ValidIdentifier reports whether s passes the identifier shape check.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// PagesURL computes the public location where the triggered workflow
// publishes the artifact for an identifier.
func PagesURL(owner, repo, id string) string {
	return fmt.Sprintf("https://%s.github.io/%s/%s/", owner, repo, id)
}

// DispatchResult is the outcome of a workflow trigger.
type DispatchResult struct {
	UUID string // Validated identifier passed as workflow input
	URL  string // Public artifact location on GitHub Pages

	// AlreadyPublished is true when the Pages probe found the artifact
	// folder and no dispatch was sent.
	AlreadyPublished bool
}

// DispatchAccepted is the response body for an accepted trigger.
type DispatchAccepted struct {
	OK   bool   `json:"ok"`
	UUID string `json:"uuid"`
	URL  string `json:"url"`
}

// ErrorResponse is the JSON error envelope for failed requests.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
