package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sineways/anymoment-cli/cmd/anymoment/commands"
)

func main() {
	if err := commands.Execute(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
