package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title           Fintrack API
// @version         1.0
// @description     Authentication and per-user financial record API.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	rootCmd := &cobra.Command{
		Use:          "fintrack-api",
		Short:        "Fintrack REST API",
		Long:         "HTTP API for user authentication and per-user financial records.",
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd, newMigrateCmd())

	// Allow running without subcommand (default to serve)
	rootCmd.RunE = serveCmd.RunE

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
