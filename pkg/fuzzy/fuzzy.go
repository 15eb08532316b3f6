package fuzzy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Option represents a selectable option in the fuzzy finder
type Option struct {
	Value       string
	Description string
}

// Finder is a line-based finder used when fzf cannot run
type Finder struct {
	prompt  string
	options []Option
	in      *bufio.Reader
	out     io.Writer
}

// New creates a finder reading from stdin and writing to stderr
func New(prompt string) *Finder {
	return NewWithIO(prompt, os.Stdin, os.Stderr)
}

// NewWithIO creates a finder on the given streams
func NewWithIO(prompt string, in io.Reader, out io.Writer) *Finder {
	return &Finder{
		prompt:  prompt,
		options: make([]Option, 0),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// AddOption adds an option to the fuzzy finder
func (f *Finder) AddOption(value, description string) {
	f.options = append(f.options, Option{
		Value:       value,
		Description: description,
	})
}

// SelectWithFilter lets the user narrow the list with a substring filter
// before picking by number. A filter matching exactly one option selects it.
func (f *Finder) SelectWithFilter() (string, error) {
	if len(f.options) == 0 {
		return "", fmt.Errorf("no options available")
	}

	for {
		fmt.Fprintln(f.out, f.prompt)
		fmt.Fprintln(f.out, "Type to filter options, or enter a number to select:")
		fmt.Fprintln(f.out, strings.Repeat("-", 50))
		f.printOptions(f.options)

		fmt.Fprint(f.out, "Filter/Select: ")
		input, err := f.readLine()
		if err != nil {
			return "", err
		}

		if input == "" {
			continue
		}

		if selection, err := strconv.Atoi(input); err == nil {
			if selection >= 1 && selection <= len(f.options) {
				return f.options[selection-1].Value, nil
			}
			fmt.Fprintf(f.out, "Selection %d is out of range (1-%d)\n\n", selection, len(f.options))
			continue
		}

		filtered := f.filterOptions(input)
		if len(filtered) == 0 {
			fmt.Fprintf(f.out, "No options match filter: %s\n\n", input)
			continue
		}

		if len(filtered) == 1 {
			fmt.Fprintf(f.out, "Auto-selecting: %s\n", filtered[0].Value)
			return filtered[0].Value, nil
		}

		fmt.Fprintf(f.out, "\nFiltered options (matching '%s'):\n", input)
		f.printOptions(filtered)

		fmt.Fprintf(f.out, "\nSelect from filtered options (1-%d), or press Enter to filter again: ", len(filtered))
		selectionInput, err := f.readLine()
		if err != nil {
			return "", err
		}

		if selectionInput == "" {
			fmt.Fprintln(f.out)
			continue
		}

		selection, err := strconv.Atoi(selectionInput)
		if err != nil || selection < 1 || selection > len(filtered) {
			fmt.Fprintf(f.out, "Invalid selection: %s\n\n", selectionInput)
			continue
		}

		return filtered[selection-1].Value, nil
	}
}

func (f *Finder) printOptions(options []Option) {
	for i, option := range options {
		fmt.Fprintf(f.out, "%d. %s", i+1, option.Value)
		if option.Description != "" {
			fmt.Fprintf(f.out, " - %s", option.Description)
		}
		fmt.Fprintln(f.out)
	}
}

// readLine returns the next trimmed input line. EOF with no pending input is
// an error so a closed stdin cannot loop forever.
func (f *Finder) readLine() (string, error) {
	input, err := f.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// filterOptions filters options based on the input string
func (f *Finder) filterOptions(filter string) []Option {
	filter = strings.ToLower(filter)
	var filtered []Option

	for _, option := range f.options {
		if strings.Contains(strings.ToLower(option.Value), filter) ||
			strings.Contains(strings.ToLower(option.Description), filter) {
			filtered = append(filtered, option)
		}
	}

	return filtered
}
