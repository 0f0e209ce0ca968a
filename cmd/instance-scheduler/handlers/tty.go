package handlers

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isInteractiveTTY is a variable so tests can force plain output.
var isInteractiveTTY = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
