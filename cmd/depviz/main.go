package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "depviz",
		Short: "Dependency graph visualization from a git repository's object store",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newGraphCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("depviz 0.1.0-dev")
		},
	}
}
