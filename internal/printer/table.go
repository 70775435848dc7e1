package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/slok/jack/internal/model"
)

// errorPrefix is prepended to every error shown to the user.
const errorPrefix = "Uh oh! "

type styles struct {
	plain lipgloss.Style
	rule  lipgloss.Style
	err   lipgloss.Style
	title lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		return styles{plain: r.NewStyle(), rule: r.NewStyle(), err: r.NewStyle(), title: r.NewStyle()}
	}

	return styles{
		plain: r.NewStyle(),
		rule:  r.NewStyle().Foreground(lipgloss.Color("8")),
		err:   r.NewStyle().Foreground(lipgloss.Color("196")),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// TablePrinter prints session output as human readable text. Blocks are
// wrapped between rules and task lists are printed as a table.
type TablePrinter struct {
	writer io.Writer
	styles styles
}

// NewTablePrinter creates a new table printer. Colors are only used when the
// writer is a terminal and noColor is false.
func NewTablePrinter(w io.Writer, noColor bool) *TablePrinter {
	return &TablePrinter{
		writer: w,
		styles: newStyles(w, noColor),
	}
}

// PrintWelcome prints the session greeting.
func (t *TablePrinter) PrintWelcome() error {
	fmt.Fprintln(t.writer, t.styles.rule.Render(Rule))
	fmt.Fprintln(t.writer, " "+t.styles.title.Render("Hello! I'm Jack"))
	fmt.Fprintln(t.writer, " What can I do for you?")
	fmt.Fprintln(t.writer, t.styles.rule.Render(Rule))
	return nil
}

// PrintBlock prints the lines indented between two rules.
func (t *TablePrinter) PrintBlock(lines []string) error {
	return t.block(lines, t.styles.plain)
}

// PrintError prints a user facing error block.
func (t *TablePrinter) PrintError(msg string) error {
	return t.block([]string{errorPrefix + msg}, t.styles.err)
}

func (t *TablePrinter) block(lines []string, style lipgloss.Style) error {
	fmt.Fprintln(t.writer, t.styles.rule.Render(Rule))
	for _, l := range lines {
		fmt.Fprintln(t.writer, " "+style.Render(l))
	}
	fmt.Fprintln(t.writer, t.styles.rule.Render(Rule))
	return nil
}

// PrintTasks prints the tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "#\tTYPE\tDONE\tDESCRIPTION\tWHEN")

	// Print rows.
	for i, task := range tasks {
		done := "no"
		if task.Done {
			done = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, kindName(task.Kind), done, task.Description, when(task))
	}

	return nil
}

// PrintRecords prints the encoded records, one per line.
func (t *TablePrinter) PrintRecords(records []string) error {
	for _, r := range records {
		fmt.Fprintln(t.writer, r)
	}
	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func kindName(k model.TaskKind) string {
	switch k {
	case model.TaskKindTodo:
		return "todo"
	case model.TaskKindDeadline:
		return "deadline"
	case model.TaskKindEvent:
		return "event"
	}
	return string(k)
}

func when(t model.Task) string {
	switch {
	case t.Deadline != nil:
		return "by " + t.Deadline.By.Format(model.DisplayDateLayout)
	case t.Event != nil:
		return fmt.Sprintf("from %s to %s", t.Event.From, t.Event.To)
	}
	return "-"
}
