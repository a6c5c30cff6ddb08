package main

import (
	"os"

	"github.com/pennywise-app/pennywise/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
