package main

import (
	"context"
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("no class given and stdin is not a terminal")

// picker chooses one class among the known ones.
type picker interface {
	Pick(ctx context.Context, message string, options []string) (string, error)
}

// newPicker is swapped in tests.
var newPicker = func() picker {
	return surveyPicker{}
}

type surveyPicker struct{}

func (surveyPicker) Pick(ctx context.Context, message string, options []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", errors.New("no classes available to pick from")
	}
	if !isTerminal(os.Stdin) {
		return "", errNoTerminal
	}

	var out string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", context.Canceled
		}
		return "", err
	}
	return out, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
