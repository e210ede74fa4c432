package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/handlekit/internal/command"
)

func main() {
	if err := command.New().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
