package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/weblinkcreator/siteapi/cmd/api/commands"
)

// @title Web Link Creator API
// @version 1.0
// @description Site data API for the Web Link Creator agency website and its admin dashboard

// @host localhost:3001
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:           "siteapi",
		Short:         "Web Link Creator site API",
		Long:          `siteapi serves the agency website's orders, team profiles and catalog, and exposes the whole site document to the admin dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewDumpCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
