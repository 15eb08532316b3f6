package github

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	validRepositoryName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	validOwnerName      = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
)

// ValidateRepositoryName validates a repository name according to GitHub rules
func ValidateRepositoryName(name string) error {
	if name == "" {
		return &ValidationError{
			Field:   "name",
			Value:   name,
			Message: "repository name is required",
		}
	}

	if len(name) > 100 {
		return &ValidationError{
			Field:   "name",
			Value:   name,
			Message: "repository name must be 100 characters or less",
		}
	}

	if !validRepositoryName.MatchString(name) {
		return &ValidationError{
			Field:   "name",
			Value:   name,
			Message: "repository name can only contain alphanumeric characters, periods, hyphens, and underscores",
		}
	}

	if name == "." || name == ".." {
		return &ValidationError{
			Field:   "name",
			Value:   name,
			Message: "repository name cannot be '.' or '..'",
		}
	}

	return nil
}

// ValidateOwner validates a user or organization login
func ValidateOwner(owner string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}

	if len(owner) > 39 {
		return fmt.Errorf("owner must be 39 characters or less")
	}

	// Alphanumeric or single hyphens, no leading or trailing hyphen
	if !validOwnerName.MatchString(owner) || strings.Contains(owner, "--") {
		return fmt.Errorf("owner '%s' is invalid: must contain only alphanumeric characters and single hyphens, cannot start or end with hyphen", owner)
	}

	return nil
}

// ValidateVisibility checks a visibility value accepted by the API
func ValidateVisibility(visibility string) error {
	switch visibility {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal:
		return nil
	default:
		return &ValidationError{
			Field:   "visibility",
			Value:   visibility,
			Message: "visibility must be one of: public, private, internal",
		}
	}
}
