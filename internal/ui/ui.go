// Package ui provides the interactive prompts of the netki CLI.
package ui

import (
	"errors"

	"github.com/manifoldco/promptui"
)

type ConfirmationOption string

const (
	ConfirmationDefaultNo  ConfirmationOption = "N"
	ConfirmationDefaultYes ConfirmationOption = "y"
)

// ErrCancelled is returned when the user interrupts a prompt with Ctrl+C.
var ErrCancelled = errors.New("cancelled by the user")

// ConfirmFunc asks a yes/no question. Commands take one so tests can answer for the user.
type ConfirmFunc func(label string) (bool, error)

var runPrompt = func(prompt *promptui.Prompt) (string, error) {
	return prompt.Run()
}

// Confirm prompts the user for a yes/no confirmation with default as No.
func Confirm(label string) (bool, error) {
	return ConfirmWithDefault(label, ConfirmationDefaultNo)
}

// ConfirmWithDefault prompts the user for a yes/no confirmation with specified default.
func ConfirmWithDefault(label string, option ConfirmationOption) (bool, error) {
	prompt := &promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	defaultYes := option == ConfirmationDefaultYes
	if defaultYes {
		prompt.Default = "y"
	}

	res, err := runPrompt(prompt)
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrCancelled
		}
		// promptui answers "n" with ErrAbort
		return false, nil
	}

	if res == "" {
		return defaultYes, nil
	}

	return res == "y" || res == "Y", nil
}
