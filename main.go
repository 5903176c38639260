package main

import (
	"os"

	"github.com/devfeed/devfeed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
