package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/kutbudev/alarmclock/pkg/models"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/urfave/cli/v2"
)

const timeLayout = "2006-01-02 15:04"

// NewMeetingCommand groups read-only meeting views.
func NewMeetingCommand() *cli.Command {
	return &cli.Command{
		Name:    "meeting",
		Aliases: []string{"m"},
		Usage:   "Inspect meetings",
		Subcommands: []*cli.Command{
			meetingListCmd(),
		},
	}
}

// meetingListCmd lists all meetings by start time.
func meetingListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all meetings",
		Action: func(c *cli.Context) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			meetings, err := repository.NewMeetingRepository(e.db).List(c.Context)
			if err != nil {
				return err
			}

			if len(meetings) == 0 {
				fmt.Fprintln(c.App.Writer, "No meetings found.")
				return nil
			}

			fmt.Fprintln(c.App.Writer, headerStyle.Render(fmt.Sprintf("Meetings (%d)", len(meetings))))
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTART\tEND\tTITLE\tTASKS")
			fmt.Fprintln(w, "--\t-----\t---\t-----\t-----")
			for _, m := range meetings {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
					m.ID,
					m.StartTime.UTC().Format(timeLayout),
					m.EndTime.UTC().Format(timeLayout),
					truncateString(m.Title, 40),
					len(m.Tasks))
			}
			return w.Flush()
		},
	}
}

// NewNoteCommand groups meeting note views.
func NewNoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Inspect meeting notes",
		Subcommands: []*cli.Command{
			noteShowCmd(),
		},
	}
}

// noteShowCmd renders a meeting's note as markdown.
func noteShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the note of a meeting",
		ArgsUsage: "[meeting-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the markdown source instead of rendering it",
			},
		},
		Action: func(c *cli.Context) error {
			meetingID, err := parseID(c, "meeting")
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			repos := repository.NewRepositories(e.db)
			meeting, err := repos.Meetings.GetByID(c.Context, meetingID)
			if err != nil {
				return err
			}
			note, err := repos.Notes.GetOrCreate(c.Context, meetingID)
			if err != nil {
				return err
			}

			out, err := renderNote(meeting, note, c.Bool("raw") || !stdoutIsTerminal())
			if err != nil {
				return err
			}
			fmt.Fprint(c.App.Writer, out)
			return nil
		},
	}
}

func renderNote(m *models.Meeting, n *models.Note, raw bool) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	fmt.Fprintf(&b, "_%s to %s_\n\n", m.StartTime.UTC().Format(timeLayout), m.EndTime.UTC().Format(timeLayout))
	if len(m.Tasks) > 0 {
		b.WriteString("## Tasks\n\n")
		for _, t := range m.Tasks {
			check := " "
			if t.Status == models.TaskStatusCompleted {
				check = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", check, t.Title, t.Priority)
		}
		b.WriteString("\n")
	}
	b.WriteString("## Notes\n\n")
	if strings.TrimSpace(n.Content) == "" {
		b.WriteString("_No notes yet._\n")
	} else {
		b.WriteString(n.Content)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n_Last edited %s_\n", n.UpdatedAt.UTC().Format(time.RFC3339))

	if raw {
		return b.String(), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(b.String())
}
