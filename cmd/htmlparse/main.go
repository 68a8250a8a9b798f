package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "htmlparse",
		Short:        "A forgiving HTML parser",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}
