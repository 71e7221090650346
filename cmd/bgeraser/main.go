package main

import (
	"fmt"
	"log/slog"
	"os"

	bgeraser "github.com/nkoller/background-eraser"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "bgeraser",
	Short:         "Erase a solid background color while keeping anti-aliased edges",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		bgeraser.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log per-sweep diagnostics")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
