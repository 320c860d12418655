package commands

import (
	"fmt"

	"github.com/kutbudev/alarmclock/internal/auth"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/urfave/cli/v2"
)

// NewSessionCommand groups session maintenance.
func NewSessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Maintain login sessions",
		Subcommands: []*cli.Command{
			{
				Name:  "prune",
				Usage: "Delete expired sessions",
				Action: func(c *cli.Context) error {
					e, err := openEnv()
					if err != nil {
						return err
					}
					defer e.close()

					repos := repository.NewRepositories(e.db)
					n, err := auth.NewService(repos.Users, repos.Sessions, e.cfg.Auth.SessionTTL).PruneExpired(c.Context)
					if err != nil {
						return err
					}
					e.log.Info("pruned expired sessions", "count", n)
					fmt.Fprintf(c.App.Writer, "Deleted %d expired session(s)\n", n)
					return nil
				},
			},
		},
	}
}
