package github

import (
	"fmt"
)

// RepositoryConfig holds the settings used to create a repository
type RepositoryConfig struct {
	Name              string
	Description       string
	Private           bool
	LicenseTemplate   string
	GitignoreTemplate string
}

// Validate validates the repository configuration
func (r *RepositoryConfig) Validate() error {
	var validationErrors ValidationErrors

	if err := ValidateRepositoryName(r.Name); err != nil {
		if valErr, ok := err.(*ValidationError); ok {
			validationErrors = append(validationErrors, *valErr)
		} else {
			validationErrors.Add("name", r.Name, err.Error())
		}
	}

	if len(r.Description) > 350 {
		validationErrors.Add("description", "", "repository description must be 350 characters or less")
	}

	if validationErrors.HasErrors() {
		return &GitHubError{
			Type:      ErrorTypeValidation,
			Message:   validationErrors.Error(),
			Cause:     validationErrors,
			Resource:  fmt.Sprintf("repository %s", r.Name),
			Retryable: false,
		}
	}

	return nil
}
