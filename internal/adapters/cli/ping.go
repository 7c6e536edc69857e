package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/application/ping"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send a PingQuery through the mediator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *App) error {
				reply, err := mediator.Ask[string](app.Context(), app.Mediator, ping.PingQuery{})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			})
		},
	}
}
