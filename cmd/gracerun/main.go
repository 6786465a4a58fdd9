package main

import (
	"os"

	"github.com/yndnr/gracerun/internal/cli/command"
)

func main() {
	os.Exit(command.Execute(command.App(), os.Args))
}
