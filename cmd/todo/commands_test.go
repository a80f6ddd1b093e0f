package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/memstore"
)

func runCmd(t *testing.T, store *memstore.Store, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(store, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_AddAndList(t *testing.T) {
	store := memstore.New()

	code, out, _ := runCmd(t, store, "add", "Buy groceries", "Milk, eggs")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "1 - Buy groceries")

	code, out, _ = runCmd(t, store, "a", "Write report")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "2 - Write report")

	code, out, _ = runCmd(t, store, "list")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "[ ] 1  Buy groceries - Milk, eggs")
	assert.Contains(t, out, "[ ] 2  Write report")
	assert.Contains(t, out, "2 tasks (0 completed)")
}

func TestRun_AddValidation(t *testing.T) {
	store := memstore.New()

	code, _, errOut := runCmd(t, store, "add", "   ")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "title")

	code, _, _ = runCmd(t, store, "add")
	assert.Equal(t, 1, code)
}

func TestRun_UpdateShorthandAndExplicitField(t *testing.T) {
	store := memstore.New()
	_, _, _ = runCmd(t, store, "add", "Original", "desc")

	// Два аргумента - сокращение для title
	code, out, _ := runCmd(t, store, "update", "1", "New title")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "New title")

	// Три аргумента - явное поле
	code, _, _ = runCmd(t, store, "upd", "1", "description", "new desc")
	assert.Equal(t, 0, code)

	task, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "New title", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, "new desc", *task.Description)

	// Неизвестное поле отклоняется при разборе
	code, _, errOut := runCmd(t, store, "update", "1", "priority", "5")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown field")
}

func TestRun_CompleteIncomplete(t *testing.T) {
	store := memstore.New()
	_, _, _ = runCmd(t, store, "add", "Chore")

	for _, alias := range []string{"complete", "done"} {
		code, out, _ := runCmd(t, store, alias, "1")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "marked complete")
	}

	for _, alias := range []string{"incomplete", "undone", "pending"} {
		code, out, _ := runCmd(t, store, alias, "1")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "marked incomplete")
	}

	code, _, _ := runCmd(t, store, "done", "99")
	assert.Equal(t, 1, code)
}

func TestRun_Delete(t *testing.T) {
	store := memstore.New()
	_, _, _ = runCmd(t, store, "add", "Doomed")

	code, out, _ := runCmd(t, store, "rm", "1")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "deleted")

	code, _, _ = runCmd(t, store, "delete", "1")
	assert.Equal(t, 1, code, "double delete fails")

	code, _, errOut := runCmd(t, store, "delete", "abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid task id")
}

func TestRun_UnknownCommand(t *testing.T) {
	store := memstore.New()
	code, _, errOut := runCmd(t, store, "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown command")
}

func TestRun_ListMarksCompleted(t *testing.T) {
	store := memstore.New()
	_, _, _ = runCmd(t, store, "add", "One")
	_, _, _ = runCmd(t, store, "add", "Two")
	_, _, _ = runCmd(t, store, "done", "1")

	_, out, _ := runCmd(t, store, "ls")
	assert.Contains(t, out, "[x] 1  One")
	assert.Contains(t, out, "[ ] 2  Two")
	assert.Contains(t, out, "2 tasks (1 completed)")
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`add "Buy groceries" "Milk, eggs"`, []string{"add", "Buy groceries", "Milk, eggs"}},
		{"list", []string{"list"}},
		{`update 1 title "New name"`, []string{"update", "1", "title", "New name"}},
		{"  done   3  ", []string{"done", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, splitArgs(strings.TrimSpace(tt.line)))
		})
	}
}
