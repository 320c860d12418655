package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kutbudev/alarmclock/internal/auth"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// NewUserCommand groups account administration.
func NewUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Subcommands: []*cli.Command{
			userCreateCmd(),
		},
	}
}

// userCreateCmd creates an account, prompting for the password.
func userCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a user account",
		ArgsUsage: "[username]",
		Action: func(c *cli.Context) error {
			username := strings.TrimSpace(c.Args().First())
			if username == "" {
				return fmt.Errorf("username is required")
			}

			password, err := readPassword(c)
			if err != nil {
				return err
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			repos := repository.NewRepositories(e.db)
			svc := auth.NewService(repos.Users, repos.Sessions, e.cfg.Auth.SessionTTL)
			user, session, err := svc.Signup(c.Context, username, password)
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("username %q is already taken", username)
			}
			if err != nil {
				return err
			}
			// The CLI has no use for the login session Signup opens.
			if err := svc.Logout(c.Context, session.Token); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}

var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

	askPassword = func() (string, error) {
		var password string
		prompt := &survey.Password{Message: "Password:"}
		err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required))
		return password, err
	}
)

// readPassword prompts without echo on a terminal, otherwise reads one line
// from the app's input.
func readPassword(c *cli.Context) (string, error) {
	if stdinIsTerminal() {
		password, err := askPassword()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return password, nil
	}

	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
