package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/todosync/internal/client/reconciler"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
	"github.com/iudanet/todosync/internal/models"
)

func newListCmd(run runFunc) *cobra.Command {
	var active, completed, refresh bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos from the local cache, newest first",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if active && completed {
				return fmt.Errorf("--active and --completed are mutually exclusive")
			}

			if refresh {
				if _, err := a.requireLogin(ctx); err != nil {
					return err
				}
				if _, err := a.sync.SyncNow(ctx, clientsync.ReasonManual); err != nil {
					a.io.Printf("Sync failed, showing cached todos: %v\n", err)
				}
			}

			todos := a.data.List()
			filtered := make([]reconciler.TodoView, 0, len(todos))
			for _, t := range todos {
				if (active && t.Completed) || (completed && !t.Completed) {
					continue
				}
				filtered = append(filtered, t)
			}
			return printTodos(a.io, filtered)
		}),
	}

	cmd.Flags().BoolVar(&active, "active", false, "show only active todos")
	cmd.Flags().BoolVar(&completed, "completed", false, "show only completed todos")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "sync with the server before listing")
	return cmd
}

func newShowCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show todo details",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			todo, err := a.data.Resolve(args[0])
			if err != nil {
				return err
			}
			return printTodo(a.io, todo)
		}),
	}
}

func newAddCmd(run runFunc) *cobra.Command {
	var priority int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			todo, err := a.data.Add(ctx, strings.Join(args, " "), priority)
			if err != nil {
				return err
			}
			a.io.Printf("✓ Added %s\n", todoLine(todo))
			return nil
		}),
	}

	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority 1 (urgent) to 4 (low), default 3")
	return cmd
}

func newEditCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <new title>",
		Short: "Change a todo title",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			title := strings.Join(args[1:], " ")
			return a.mutate(ctx, "Updated", func() (reconciler.TodoView, error) {
				return a.data.Edit(ctx, args[0], models.TodoPatch{Title: &title})
			})
		}),
	}
}

func newDoneCmd(run runFunc, completed bool) *cobra.Command {
	use, short, verb := "done <id>", "Mark a todo as completed", "Completed"
	if !completed {
		use, short, verb = "undo <id>", "Mark a todo as active again", "Reopened"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			return a.mutate(ctx, verb, func() (reconciler.TodoView, error) {
				return a.data.Edit(ctx, args[0], models.TodoPatch{Completed: &completed})
			})
		}),
	}
}

func newToggleCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle the completed flag of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			return a.mutate(ctx, "Toggled", func() (reconciler.TodoView, error) {
				return a.data.Toggle(ctx, args[0])
			})
		}),
	}
}

func newPriorityCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <1-4>",
		Short: "Set todo priority (1 urgent, 4 low)",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			priority, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("priority must be a number: %w", err)
			}
			return a.mutate(ctx, "Updated", func() (reconciler.TodoView, error) {
				return a.data.SetPriority(ctx, args[0], priority)
			})
		}),
	}
}

func newRemoveCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			todo, err := a.data.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.data.Remove(ctx, todo.ID); err != nil {
				return err
			}
			a.io.Printf("✓ Deleted %s\n", todoLine(todo))
			return nil
		}),
	}
}

func newClearCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed todos",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			n, err := a.data.ClearCompleted(ctx)
			if err != nil {
				return err
			}
			a.io.Printf("✓ Cleared %d completed todos\n", n)
			return nil
		}),
	}
}

// mutate выполняет изменение задачи и сообщает результат.
// Если сервер недоступен, локальное изменение остается в кэше
func (a *App) mutate(ctx context.Context, verb string, fn func() (reconciler.TodoView, error)) error {
	if _, err := a.requireLogin(ctx); err != nil {
		return err
	}

	todo, err := fn()
	if err != nil {
		if todo.ID != "" {
			a.io.Printf("Changed locally only: %s\n", todoLine(todo))
		}
		return err
	}

	a.io.Printf("✓ %s %s\n", verb, todoLine(todo))
	return nil
}
