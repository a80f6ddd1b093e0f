package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/BuzzLyutic/task-tracker/internal/memstore"
)

func main() {
	store := memstore.New()
	args := os.Args[1:]

	// Без аргументов - интерактивный режим, иначе одна команда
	if len(args) == 0 {
		os.Exit(runInteractive(store))
	}
	os.Exit(run(store, args, os.Stdout, os.Stderr))
}

// runInteractive крутит REPL над тем же хранилищем: задачи живут, пока жив
// процесс, счетчик ID не сбрасывается
func runInteractive(store *memstore.Store) int {
	fmt.Println("todo interactive mode - 'help' for commands, 'quit' to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("todo> ")
		if !scanner.Scan() {
			return 0
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			return 0
		}

		run(store, splitArgs(line), os.Stdout, os.Stderr)
	}
}

// splitArgs разбивает строку REPL на аргументы, уважая двойные кавычки
func splitArgs(line string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
