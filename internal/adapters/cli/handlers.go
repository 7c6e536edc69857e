package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hubertnosek100/hmediator/internal/infrastructure/config"
)

// NewHandlersCommand creates the handlers command
func NewHandlersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List registered handler contracts and validate the registry",
		Long: `List every registered handler with its contract and constructor
dependencies, then check that each contract resolves to exactly one handler.

Example:
  hmediator handlers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load config: %v\n", err)
				cfg = config.LoadConfigOrDefault("")
			}

			// Validation is reported below rather than failing construction
			mediatorCfg := cfg.Mediator
			mediatorCfg.ValidateOnStartup = false

			registry, err := NewRegistry(&mediatorCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scope: %s\n\n", registry.Scope())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CONTRACT\tHANDLER\tDEPENDENCIES")
			for _, d := range registry.Handlers() {
				deps := make([]string, 0, len(d.Dependencies()))
				for _, dep := range d.Dependencies() {
					deps = append(deps, dep.String())
				}
				depList := strings.Join(deps, ", ")
				if depList == "" {
					depList = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Contract(), d.HandlerType(), depList)
			}
			_ = w.Flush()

			if err := registry.Validate(); err != nil {
				return fmt.Errorf("handler registry is inconsistent: %w", err)
			}
			fmt.Fprintln(out, "\nRegistry OK")
			return nil
		},
	}
}
