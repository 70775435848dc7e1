// Package lib provides a Go SDK to run jack task manager sessions
// programmatically.
//
// A session owns one task list. It is loaded once from the store and every
// change made by a command is saved back right away. This package is useful
// for scripting and for building other front-ends on top of jack without
// shelling out to the jack CLI binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	notice, _ := client.Load(ctx)
//	if notice != "" {
//	    fmt.Println(notice)
//	}
//
//	resp, err := client.Submit(ctx, "deadline return book /by tomorrow")
//	if err != nil {
//	    fmt.Println("Uh oh! " + err.Error())
//	}
//	fmt.Println(strings.Join(resp.Lines, "\n"))
//
// # Commands
//
// The submitted lines use the same commands as the interactive session:
//
//	list
//	todo <description>
//	deadline <description> /by <date>
//	event <description> /from <start> /to <end>
//	mark <n>
//	unmark <n>
//	delete <n>
//	find <keyword>
//	bye
//
// Dates accept ISO (2019-10-15), numeric day first (15/10/2019, 15-10-2019),
// textual (15 Oct 2019, Oct 15 2019) and relative forms ("today", "tomorrow",
// "in 3 days", "next friday", "fri").
//
// # Storage
//
// By default the tasks are kept in a text file in ~/.jack. Set [Config].Backend
// to [BackendSQLite] to use a SQLite database instead, or point
// [Config].ConfigPath to a YAML file:
//
//	storage:
//	  sqlite:
//	    path: ~/tasks/jack.db
//
// # Error Handling
//
// Errors caused by the submitted input can be inspected with [errors.Is]:
//
//   - [ErrEmptyDescription]: The description or keyword is blank.
//   - [ErrMissingArgument]: A required part like "/by" is missing.
//   - [ErrInvalidIndex]: The task number is not valid.
//   - [ErrUnknownCommand]: The command is not recognised.
//   - [ErrDateFormat]: The date could not be understood.
//   - [ErrReservedCharacter]: A text contains "|".
//
// Any other error wraps [ErrInternal].
package lib
