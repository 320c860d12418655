package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/kutbudev/alarmclock/api"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/urfave/cli/v2"
)

// NewServeCommand runs the HTTP API until interrupted.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Action: func(c *cli.Context) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := api.NewServer(e.cfg, e.db, e.log).ListenAndServe(ctx); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		},
	}
}

// NewMigrateCommand applies the schema and exits.
func NewMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Action: func(c *cli.Context) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := repository.Health(e.db); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Schema is up to date (%s).\n", e.cfg.Database.Driver)
			return nil
		},
	}
}
