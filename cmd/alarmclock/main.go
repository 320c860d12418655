package main

import (
	"log"
	"os"

	"github.com/kutbudev/alarmclock/internal/cli/commands"
	"github.com/urfave/cli/v2"
)

// Version will be set during build with ldflags
var Version = "dev"

func main() {
	app := NewApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// NewApp assembles the alarmclock command tree.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "alarmclock",
		Usage:   "Projects, tasks and meeting notes backend",
		Version: Version,
		Commands: []*cli.Command{
			// Server
			commands.NewServeCommand(),
			commands.NewMigrateCommand(),

			// Administration
			commands.NewUserCommand(),
			commands.NewSessionCommand(),

			// Views
			commands.NewMeetingCommand(),
			commands.NewNoteCommand(),
		},
	}
}
