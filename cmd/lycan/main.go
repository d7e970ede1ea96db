package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/lycan/internal/cmd"
	"github.com/harrison/lycan/internal/generator"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, generator.ErrExhausted) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
