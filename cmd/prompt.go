package cmd

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
)

var errAborted = errors.New("aborted")

// prompter asks the user for input. Commands get a nil prompter when stdin is
// not a terminal.
type prompter interface {
	Ask(label string, validate func(string) error) (string, error)
	Confirm(label string) (bool, error)
	Select(label string, items []string) (int, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Ask(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: promptui.ValidateFunc(validate),
	}

	value, err := p.Run()
	if err != nil {
		return "", promptError(err)
	}
	return strings.TrimSpace(value), nil
}

func (terminalPrompter) Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, promptError(err)
	}
	return true, nil
}

func (terminalPrompter) Select(label string, items []string) (int, error) {
	p := promptui.Select{
		Label: label,
		Items: items,
	}

	idx, _, err := p.Run()
	if err != nil {
		return -1, promptError(err)
	}
	return idx, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errAborted
	}
	return err
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func validEmail(s string) error {
	return interviewer.ValidateEmail(strings.TrimSpace(s))
}
