package fuzzy

import (
	"fmt"
	"strings"

	fzf "github.com/junegunn/fzf/src"
	logger "github.com/sirupsen/logrus"
)

// separator splits an option value from its description in the fzf list
const separator = "  │  "

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// Selector picks one value among options
type Selector interface {
	SetOptions(options []Option) error
	SetPrompt(prompt string)
	Select() (string, error)
}

// FzfFinder implements fuzzy finding using the fzf library
type FzfFinder struct {
	options  []Option
	prompt   string
	runner   FzfRunner
	fallback func(prompt string) *Finder
}

// NewFzf creates a new fzf-style fuzzy finder
func NewFzf(prompt string) *FzfFinder {
	return NewFzfWithRunner(prompt, &DefaultFzfRunner{})
}

// NewFzfWithRunner creates a new fzf-style fuzzy finder with a custom runner
func NewFzfWithRunner(prompt string, runner FzfRunner) *FzfFinder {
	return &FzfFinder{
		prompt:   prompt,
		options:  make([]Option, 0),
		runner:   runner,
		fallback: New,
	}
}

// SetOptions sets the available options for selection
func (f *FzfFinder) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}

	f.options = make([]Option, len(options))
	copy(f.options, options)
	return nil
}

// SetPrompt sets the display prompt
func (f *FzfFinder) SetPrompt(prompt string) {
	f.prompt = prompt
}

// Select runs fzf over the options and returns the chosen value. When fzf
// itself fails to start the line-based Finder is used instead.
func (f *FzfFinder) Select() (string, error) {
	if len(f.options) == 0 {
		return "", fmt.Errorf("no options available")
	}

	opts, err := fzf.ParseOptions(true, []string{
		"--prompt=" + f.prompt + " ",
		"--height=40%",
		"--layout=reverse",
		"--no-multi",
		"--cycle",
		"--tiebreak=length",
		"--no-mouse",
		"--border=none",
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse fzf options: %w", err)
	}

	input := make(chan string, len(f.options))
	for _, option := range f.options {
		input <- display(option)
	}
	close(input)

	output := make(chan string, len(f.options))
	opts.Input = input
	opts.Output = output

	exitCode, err := f.runner.Run(opts)
	if err != nil {
		logger.Debugf("fzf failed, falling back to numbered selection: %v", err)
		return f.fallbackSelect()
	}

	if exitCode != fzf.ExitOk {
		return "", fmt.Errorf("fzf selection cancelled or failed")
	}

	var selected string
	select {
	case selected = <-output:
	default:
	}

	selectedValue := strings.TrimSpace(strings.SplitN(selected, separator, 2)[0])
	if selectedValue == "" {
		return "", fmt.Errorf("no selection made")
	}

	for _, option := range f.options {
		if option.Value == selectedValue {
			return option.Value, nil
		}
	}

	return selectedValue, nil
}

func (f *FzfFinder) fallbackSelect() (string, error) {
	finder := f.fallback(f.prompt)
	for _, option := range f.options {
		finder.AddOption(option.Value, option.Description)
	}
	return finder.SelectWithFilter()
}

func display(option Option) string {
	if option.Description == "" {
		return option.Value
	}
	return option.Value + separator + option.Description
}

var _ Selector = (*FzfFinder)(nil)
