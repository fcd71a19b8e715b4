package main

import (
	"os"

	"github.com/spf13/cobra"

	"quokkalist/internal/interfaces/cli/migrate"
	"quokkalist/internal/interfaces/cli/server"
)

func main() {
	root := &cobra.Command{
		Use:   "quokkalist",
		Short: "Promotion, pricing and vote engine for the server list",
	}

	root.AddCommand(server.NewCommand())
	root.AddCommand(migrate.NewCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
