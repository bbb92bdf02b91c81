package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the syscall symbol list",
	Long: `Print the syscall symbols exposed by the current build, one per
line, in definition order.

By default only the stable ABI is printed; this is the list guest
import validators resolve against in production builds. With --all the
full list of the current build is printed instead.`,
	Run: runList,
}

func init() {
	listCmd.Flags().Bool("all", false, "Include unstable syscalls in the listing")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")

	table, err := buildTable(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, sym := range table.Syscalls(all) {
		fmt.Println(sym)
	}
}
