package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/kutbudev/alarmclock/internal/logging"
	"github.com/kutbudev/alarmclock/pkg/config"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
	"gorm.io/gorm"
)

// Helper functions shared across commands

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// env is what every command needs to talk to the database.
type env struct {
	cfg *config.Config
	db  *gorm.DB
	log *slog.Logger
}

// openEnv loads configuration and opens the migrated database.
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log)
	db, err := repository.NewDatabase(cfg, logging.GormLogger(cfg.Log.Level))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, log: log}, nil
}

func (e *env) close() {
	if err := repository.Close(e.db); err != nil {
		e.log.Warn("failed to close database", "error", err)
	}
}

// parseID reads a positive integer argument.
func parseID(c *cli.Context, what string) (uint, error) {
	if c.NArg() == 0 {
		return 0, fmt.Errorf("%s id is required", what)
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, c.Args().First())
	}
	return uint(id), nil
}

// stdoutIsTerminal reports whether output goes to an interactive terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the terminal width, 80 when unknown.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
