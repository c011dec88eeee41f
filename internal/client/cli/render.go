package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"text/template"
	"time"

	"github.com/iudanet/todosync/internal/client/reconciler"
)

const shortIDLen = 8

const todoTemplate = `
=== Todo Details ===

ID:       {{.ID}}
Title:    {{.Title}}
Status:   {{if .Completed}}completed{{else}}active{{end}}
Priority: {{.Priority}} ({{priorityName .Priority}})
Created:  {{formatTime .CreatedAt}}
Updated:  {{formatTime .UpdatedAt}}
`

var todoDetails = template.Must(template.New("todo").Funcs(template.FuncMap{
	"priorityName": priorityName,
	"formatTime":   formatTime,
}).Parse(todoTemplate))

func priorityName(p int) string {
	switch p {
	case 1:
		return "urgent"
	case 2:
		return "high"
	case 3:
		return "normal"
	case 4:
		return "low"
	default:
		return "unknown"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// printTodos выводит задачи таблицей в порядке отображения
func printTodos(w io.Writer, todos []reconciler.TodoView) error {
	if len(todos) == 0 {
		_, err := fmt.Fprintln(w, "No todos.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tTITLE")
	for _, t := range todos {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", shortID(t.ID), checkbox(t.Completed), t.Priority, t.Title)
	}
	return tw.Flush()
}

// printTodo выводит одну задачу подробно
func printTodo(w io.Writer, todo reconciler.TodoView) error {
	return todoDetails.Execute(w, todo)
}

// todoLine однострочное описание для сообщений о результате
func todoLine(t reconciler.TodoView) string {
	return fmt.Sprintf("%s %s %s (priority %d)", shortID(t.ID), checkbox(t.Completed), t.Title, t.Priority)
}
