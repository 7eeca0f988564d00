package main

import (
	"fmt"
	"os"

	"fitness-journal/internal/cli"
	"fitness-journal/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
