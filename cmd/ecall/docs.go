package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caffeineduck/ecall/abi"
	"github.com/caffeineduck/ecall/env"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate markdown reference docs for the syscall surface",
	Long: `Write a markdown reference for every syscall in the current build
to stdout: signature, description, stability, and whether the call
mutates state.`,
	Run: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) {
	table, err := buildTable(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Syscall reference")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Host functions callable by guest code, by import symbol.")

	for _, d := range table.Descriptors() {
		fmt.Fprintf(out, "\n## `%s`\n\n", d.Symbol)
		fmt.Fprintf(out, "```\n%s\n```\n\n", signature(d))
		if d.Doc != "" {
			fmt.Fprintf(out, "%s\n\n", d.Doc)
		}
		if d.Stable {
			fmt.Fprintln(out, "**Stable API**: this syscall is part of the frozen ABI and will never change.")
		} else {
			fmt.Fprintln(out, "**Unstable API**: not standardized, only available in unstable builds.")
		}
		if d.Mutating {
			fmt.Fprintln(out, "\nMutates state: denied under a read-only execution context.")
		}
	}
}

func signature(d env.Descriptor) string {
	var b strings.Builder
	b.WriteString(d.Symbol)
	b.WriteByte('(')
	for i, p := range d.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
	}
	b.WriteByte(')')
	if d.Returns != abi.ReturnUnit {
		fmt.Fprintf(&b, " -> %s", d.Returns)
	}
	return b.String()
}
