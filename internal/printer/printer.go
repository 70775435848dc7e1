package printer

import "github.com/slok/jack/internal/model"

// Rule is the separator printed around text blocks.
const Rule = "____________________________________________________________"

// Printer knows how to print session output in different formats.
type Printer interface {
	PrintWelcome() error
	PrintBlock(lines []string) error
	PrintError(msg string) error
	PrintTasks(tasks []model.Task) error
	PrintRecords(records []string) error
	PrintMessage(msg string) error
}
