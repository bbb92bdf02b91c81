package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caffeineduck/ecall/env"
	"github.com/caffeineduck/ecall/storage"
)

var rootCmd = &cobra.Command{
	Use:   "ecall",
	Short: "Host-function dispatch table tooling",
	Long: `ecall - Inspect and exercise host syscall dispatch tables.

The tool operates on the built-in storage environment. Build flags
mirror the table-construction options: --unstable admits experimental
syscalls, --feature enables guarded ones.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("unstable", "u", false, "Include unstable syscalls")
	rootCmd.PersistentFlags().StringArray("feature", nil, "Enable a feature gate (can be repeated)")
}

// buildTable compiles the demo environment under the flags given on the
// command line, plus any extra options the command needs.
func buildTable(cmd *cobra.Command, extra ...env.Option) (*env.Table, error) {
	unstable, _ := cmd.Root().PersistentFlags().GetBool("unstable")
	features, _ := cmd.Root().PersistentFlags().GetStringArray("feature")

	opts := make([]env.Option, 0, len(features)+len(extra)+1)
	if unstable {
		opts = append(opts, env.WithUnstable())
	}
	for _, f := range features {
		opts = append(opts, env.WithFeature(f))
	}
	opts = append(opts, extra...)

	return env.NewTable(storage.Functions(), opts...)
}
