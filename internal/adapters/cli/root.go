package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	showMetrics bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hmediator",
		Short: "hmediator - dispatch commands and queries through an in-process mediator",
		Long: `hmediator routes each command or query to the single handler registered
for its type, builds that handler from the service container and invokes it.

Examples:
  hmediator ping
  hmediator user create --name "Ada Lovelace" --email ada@example.com
  hmediator user get --id 6f1c...
  hmediator user list
  hmediator handlers
  hmediator config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./hmediator.yaml, ./configs, /etc/hmediator)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false,
		"Print dispatch metrics after the command completes")

	// Add command groups
	rootCmd.AddCommand(NewPingCommand())
	rootCmd.AddCommand(NewUserCommand())
	rootCmd.AddCommand(NewHandlersCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
