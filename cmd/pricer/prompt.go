package main

import (
	"github.com/pterm/pterm"
)

// prompter reads answers from the user during an interactive predict session
type prompter interface {
	Mileage() (string, error)
	Confirm(question string) (bool, error)
}

type ptermPrompter struct{}

func newPtermPrompter() ptermPrompter {
	return ptermPrompter{}
}

func (ptermPrompter) Mileage() (string, error) {
	return pterm.DefaultInteractiveTextInput.Show("Enter the car's mileage (km)")
}

func (ptermPrompter) Confirm(question string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(question)
}
