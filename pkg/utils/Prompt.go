package utils

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var ERROR_NOT_INTERACTIVE = errors.New("confirmation needed but stdin is not a terminal, pass --yes to continue")

// Confirm asks a y/n question on the terminal.
func Confirm(message string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, ERROR_NOT_INTERACTIVE
	}

	ask := promptui.Select{
		Label: fmt.Sprintf("%s [y/n]", message),
		Items: []string{"y", "n"},
	}

	_, result, err := ask.Run()
	if err != nil {
		return false, errors.Wrap(err, "prompt failed")
	}

	return result == "y", nil
}
