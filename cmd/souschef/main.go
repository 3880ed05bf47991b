// souschef is a cooking-assistant backend.
//
// Usage:
//
//	souschef serve [--addr :8080]
//	souschef cook  [--recipe "Baked Feta Pasta"]
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose, quiet bool

	rootCmd := &cobra.Command{
		Use:           "souschef",
		Short:         "souschef: ingredient photos to guided cooking sessions",
		Long:          "souschef turns available ingredients into recipe suggestions and walks you through a recipe step by step, tracking any timers the instructions mention.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "disable all logging")

	rootCmd.AddCommand(
		newServeCmd(&verbose, &quiet),
		newCookCmd(&verbose, &quiet),
	)

	return rootCmd
}
