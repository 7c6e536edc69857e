package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/application/users"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
)

// NewUserCommand creates the user command with subcommands
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create and query users",
		Long: `Create and query users via CreateUserCommand, GetUserQuery and ListUsersQuery.

Examples:
  hmediator user create --name "Ada Lovelace" --email ada@example.com
  hmediator user get --id <user-id>
  hmediator user list`,
	}

	cmd.AddCommand(newUserCreateCommand())
	cmd.AddCommand(newUserGetCommand())
	cmd.AddCommand(newUserListCommand())

	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var id, name, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = user.NewID()
			}

			return withApp(func(app *App) error {
				err := app.Mediator.Send(app.Context(), users.CreateUserCommand{
					ID:    id,
					Name:  name,
					Email: email,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "User ID (default: generated UUID)")
	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserGetCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *App) error {
				u, err := mediator.Ask[*user.User](app.Context(), app.Mediator, users.GetUserQuery{ID: id})
				if err != nil {
					return err
				}
				printUsers(cmd.OutOrStdout(), []*user.User{u})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "User ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newUserListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *App) error {
				all, err := mediator.Ask[[]*user.User](app.Context(), app.Mediator, users.ListUsersQuery{})
				if err != nil {
					return err
				}
				if len(all) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No users found")
					return nil
				}
				printUsers(cmd.OutOrStdout(), all)
				return nil
			})
		},
	}
}

func printUsers(out io.Writer, list []*user.User) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format(time.RFC3339))
	}
	_ = w.Flush()
}
