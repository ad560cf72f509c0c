package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"secret-santa-backend/internal/bootstrap"
	"secret-santa-backend/internal/common/config"
	usermodels "secret-santa-backend/internal/features/user/models"
)

type appLoader func(ctx context.Context, verbose bool) (*bootstrap.App, *config.Config, error)

type cli struct {
	load    appLoader
	out     io.Writer
	verbose bool
}

func newRootCmd(load appLoader, out io.Writer) *cobra.Command {
	c := &cli{load: load, out: out}

	root := &cobra.Command{
		Use:   "santactl",
		Short: "Operate Secret Santa exchanges",
		Long: `santactl draws, resets and inspects gift exchanges.

It reads the same environment as the HTTP server (REDIS_*, STORE_DRIVER,
SQLITE_PATH, DEFAULT_EXCHANGE_ID) and prints JSON to stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		c.drawCmd(),
		c.resetCmd(),
		c.assignmentsCmd(),
		c.exchangesCmd(),
		c.usersCmd(),
	)
	return root
}

// withApp opens the stores for the duration of fn.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App, cfg *config.Config) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, cfg, err := c.load(ctx, c.verbose)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app, cfg)
}

func exchangeArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Draw.DefaultExchangeID
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) drawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw [exchange]",
		Short: "Draw new assignments, replacing any existing ones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, cfg *config.Config) error {
				result, err := app.Draws.Draw(ctx, exchangeArg(args, cfg))
				if err != nil {
					return err
				}
				return c.printJSON(result)
			})
		},
	}
}

func (c *cli) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [exchange]",
		Short: "Remove every assignment of an exchange",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, cfg *config.Config) error {
				id := exchangeArg(args, cfg)
				removed, err := app.Draws.Reset(ctx, id)
				if err != nil {
					return err
				}
				return c.printJSON(map[string]interface{}{
					"exchange_id": id,
					"removed":     removed,
				})
			})
		},
	}
}

func (c *cli) assignmentsCmd() *cobra.Command {
	var giver string
	cmd := &cobra.Command{
		Use:   "assignments [exchange]",
		Short: "List the assignments of an exchange",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, cfg *config.Config) error {
				id := exchangeArg(args, cfg)
				if giver != "" {
					a, err := app.Draws.GetAssignment(ctx, id, giver)
					if err != nil {
						return err
					}
					return c.printJSON(a)
				}
				list, err := app.Draws.ListAssignments(ctx, id)
				if err != nil {
					return err
				}
				return c.printJSON(list)
			})
		},
	}
	cmd.Flags().StringVar(&giver, "giver", "", "show only the assignment of this giver")
	return cmd
}

func (c *cli) exchangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchanges",
		Short: "List exchanges that have assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, _ *config.Config) error {
				list, err := app.Draws.ListExchanges(ctx)
				if err != nil {
					return err
				}
				return c.printJSON(list)
			})
		},
	}
}

func (c *cli) usersCmd() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage registered participants",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, _ *config.Config) error {
				resp, err := app.Users.ListUsers(ctx)
				if err != nil {
					return err
				}
				return c.printJSON(resp)
			})
		},
	}

	var input usermodels.UserCreate
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, _ *config.Config) error {
				user, err := app.Users.Register(ctx, &input)
				if err != nil {
					return err
				}
				return c.printJSON(user)
			})
		},
	}
	add.Flags().StringVar(&input.ID, "id", "", "participant id, the Telegram user id for Mini App users")
	add.Flags().StringVar(&input.Name, "name", "", "display name")
	add.Flags().StringVar(&input.Email, "email", "", "email address")
	add.Flags().StringVar(&input.Interests, "interests", "", "free-form gift hints")
	add.Flags().StringVar(&input.Role, "role", "", "user or admin")
	_ = add.MarkFlagRequired("id")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App, _ *config.Config) error {
				if err := app.Users.DeleteUser(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "removed %s\n", args[0])
				return nil
			})
		},
	}

	users.AddCommand(list, add, remove)
	return users
}
