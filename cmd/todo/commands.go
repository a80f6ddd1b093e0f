package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BuzzLyutic/task-tracker/internal/memstore"
	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// updateTarget - поле, которое меняет команда update.
// Выбирается один раз при разборе аргументов, дальше неоднозначности нет.
type updateTarget int

const (
	setTitle updateTarget = iota
	setDescription
)

// run выполняет одну команду; 0 - успех, 1 - любая ошибка
func run(store *memstore.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		printHelp(out)
		return 0
	}
	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "add", "a":
		err = cmdAdd(store, rest, out)
	case "list", "ls":
		err = cmdList(store, out)
	case "update", "upd":
		err = cmdUpdate(store, rest, out)
	case "complete", "done":
		err = cmdSetCompleted(store, rest, out, true)
	case "incomplete", "undone", "pending":
		err = cmdSetCompleted(store, rest, out, false)
	case "delete", "rm":
		err = cmdDelete(store, rest, out)
	case "help":
		printHelp(out)
	default:
		err = fmt.Errorf("unknown command %q, try 'help'", command)
	}

	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func cmdAdd(store *memstore.Store, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: add <title> [description]")
	}

	description := ""
	if len(args) == 2 {
		description = args[1]
	}

	task, err := store.Create(args[0], description)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Task created: %d - %s\n", task.ID, task.Title)
	return nil
}

func cmdList(store *memstore.Store, out io.Writer) error {
	tasks := store.List()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks yet")
		return nil
	}

	for _, task := range tasks {
		fmt.Fprintln(out, formatTask(task))
	}

	total, completed := store.Counts()
	fmt.Fprintf(out, "%d tasks (%d completed)\n", total, completed)
	return nil
}

func cmdUpdate(store *memstore.Store, args []string, out io.Writer) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: update <id> <title> | update <id> title|description <value>")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	// Два аргумента - новый заголовок; три - явно названное поле
	target := setTitle
	value := args[1]
	if len(args) == 3 {
		switch args[1] {
		case "title":
			target = setTitle
		case "description":
			target = setDescription
		default:
			return fmt.Errorf("unknown field %q, expected title or description", args[1])
		}
		value = args[2]
	}

	var task model.Task
	switch target {
	case setTitle:
		task, err = store.SetTitle(id, value)
	case setDescription:
		task, err = store.SetDescription(id, value)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Task updated: %d - %s\n", task.ID, task.Title)
	return nil
}

func cmdSetCompleted(store *memstore.Store, args []string, out io.Writer, completed bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: complete|incomplete <id>")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	task, err := store.SetCompleted(id, completed)
	if err != nil {
		return err
	}

	state := "incomplete"
	if task.Completed {
		state = "complete"
	}
	fmt.Fprintf(out, "Task %d marked %s\n", task.ID, state)
	return nil
}

func cmdDelete(store *memstore.Store, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := store.Delete(id); err != nil {
		return err
	}

	fmt.Fprintf(out, "Task %d deleted\n", id)
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func formatTask(task model.Task) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}

	line := fmt.Sprintf("[%s] %d  %s", mark, task.ID, task.Title)
	if task.Description != nil && *task.Description != "" {
		line += " - " + *task.Description
	}
	return line
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  add|a <title> [description]                    create a task
  list|ls                                        list all tasks
  update|upd <id> <title>                        set task title
  update|upd <id> title|description <value>      set a named field
  complete|done <id>                             mark task complete
  incomplete|undone|pending <id>                 mark task incomplete
  delete|rm <id>                                 delete a task
  help                                           show this help
`)
}
