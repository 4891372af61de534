package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/wpstack/cmd/wpstack"
	"github.com/arthur-debert/wpstack/pkg/style"
)

func main() {
	rootCmd := wpstack.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.Apply(os.Stderr, style.ErrorStyle, fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
