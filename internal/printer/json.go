package printer

import (
	"encoding/json"
	"io"

	"github.com/slok/jack/internal/model"
)

// JSONPrinter prints session output in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// taskItem represents a task in the list output.
type taskItem struct {
	Index       int    `json:"index"`
	Kind        string `json:"kind"`
	Done        bool   `json:"done"`
	Description string `json:"description"`
	By          string `json:"by,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Rendered    string `json:"rendered"`
}

type blockOutput struct {
	Lines []string `json:"lines"`
}

type errorOutput struct {
	Error string `json:"error"`
}

type recordsOutput struct {
	Records []string `json:"records"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintWelcome prints the session greeting.
func (j *JSONPrinter) PrintWelcome() error {
	return j.encode(messageOutput{Message: "Hello! I'm Jack. What can I do for you?"})
}

// PrintBlock prints the lines of a command result.
func (j *JSONPrinter) PrintBlock(lines []string) error {
	if lines == nil {
		lines = []string{}
	}
	return j.encode(blockOutput{Lines: lines})
}

// PrintError prints a user facing error.
func (j *JSONPrinter) PrintError(msg string) error {
	return j.encode(errorOutput{Error: msg})
}

// PrintTasks prints the tasks in JSON format, dates use the ISO layout.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	items := make([]taskItem, len(tasks))
	for i, t := range tasks {
		item := taskItem{
			Index:       i + 1,
			Kind:        string(t.Kind),
			Done:        t.Done,
			Description: t.Description,
			Rendered:    t.Render(),
		}
		if t.Deadline != nil {
			item.By = t.Deadline.By.Format(model.ISODateLayout)
		}
		if t.Event != nil {
			item.From = t.Event.From
			item.To = t.Event.To
		}
		items[i] = item
	}

	return j.encode(items)
}

// PrintRecords prints the encoded records.
func (j *JSONPrinter) PrintRecords(records []string) error {
	if records == nil {
		records = []string{}
	}
	return j.encode(recordsOutput{Records: records})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
