package fuzzy

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"autorepo/pkg/github"
)

// RepoPicker lets the user choose one repository by name
type RepoPicker struct {
	selector Selector
}

// NewRepoPicker returns a picker backed by fzf
func NewRepoPicker() *RepoPicker {
	return NewRepoPickerWithSelector(NewFzf("Select repository:"))
}

// NewRepoPickerWithSelector returns a picker using selector
func NewRepoPickerWithSelector(selector Selector) *RepoPicker {
	return &RepoPicker{selector: selector}
}

// PickRepository returns the name of the chosen repository
func (p *RepoPicker) PickRepository(repos []github.Repository) (string, error) {
	if len(repos) == 0 {
		return "", fmt.Errorf("no repositories to choose from")
	}

	options := make([]Option, 0, len(repos))
	for _, repo := range repos {
		description := repo.Visibility
		if repo.Description != "" {
			description = fmt.Sprintf("%s, %s", repo.Visibility, repo.Description)
		}
		options = append(options, Option{Value: repo.Name, Description: description})
	}

	if err := p.selector.SetOptions(options); err != nil {
		return "", err
	}

	return p.selector.Select()
}

// IsInteractive reports whether stdin and stderr are attached to a terminal
// able to host the picker
func IsInteractive() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}

	termType := os.Getenv("TERM")
	return termType != "" && termType != "dumb"
}
