package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/todosync/internal/client/storage"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
)

const healthTimeout = 3 * time.Second

func newRegisterCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			a.io.Println("=== Register ===")
			a.io.Println("")

			email, err := a.io.ReadInput("Email: ")
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			name, err := a.io.ReadInput("Name (optional): ")
			if err != nil {
				return fmt.Errorf("failed to read name: %w", err)
			}
			password, err := readNewPassword(a)
			if err != nil {
				return err
			}

			session, err := a.auth.Register(ctx, email, password, name)
			if err != nil {
				return err
			}

			a.io.Println("")
			a.io.Println("✓ Registration successful!")
			return a.startSession(ctx, session)
		}),
	}
}

func newLoginCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and download your todos",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			a.io.Println("=== Login ===")
			a.io.Println("")

			email, err := a.io.ReadInput("Email: ")
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			password, err := a.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			session, err := a.auth.Login(ctx, email, password)
			if err != nil {
				return err
			}

			a.io.Println("")
			a.io.Println("✓ Login successful!")
			return a.startSession(ctx, session)
		}),
	}
}

// startSession сбрасывает кэш прошлой сессии и делает полную выборку
func (a *App) startSession(ctx context.Context, session *storage.AuthData) error {
	if err := a.sync.Reset(ctx); err != nil {
		a.logger.Warn("Failed to reset previous sync state", slog.Any("error", err))
	}

	a.io.Printf("Email:   %s\n", session.Email)
	a.io.Printf("User ID: %s\n", session.UserID)

	res, err := a.sync.SyncNow(ctx, clientsync.ReasonColdStart)
	if err != nil {
		a.io.Printf("Initial sync failed, it will be retried later: %v\n", err)
		return nil
	}
	a.io.Printf("Synced %d todos.\n", res.Changes)
	return nil
}

func newLogoutCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local cache",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if err := a.auth.Logout(ctx); err != nil {
				return err
			}
			if err := a.sync.Reset(ctx); err != nil {
				return fmt.Errorf("failed to clear local cache: %w", err)
			}

			a.io.Println("✓ Logged out")
			return nil
		}),
	}
}

func newStatusCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, sync and server status",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			session, err := a.auth.Current(ctx)
			switch {
			case errors.Is(err, storage.ErrAuthNotFound):
				a.io.Println("Not logged in")
			case err != nil:
				return err
			default:
				a.io.Printf("Logged in as:  %s\n", session.Email)
				a.io.Printf("User ID:       %s\n", session.UserID)
				a.io.Printf("Access token:  valid until %s\n", formatTime(time.Unix(session.ExpiresAt, 0)))
			}

			if wm, ok := a.sync.Watermark(); ok {
				a.io.Printf("Last sync:     %s\n", formatTime(wm))
			} else {
				a.io.Println("Last sync:     never")
			}

			todos := a.data.List()
			var done int
			for _, t := range todos {
				if t.Completed {
					done++
				}
			}
			a.io.Printf("Todos:         %d (%d active, %d completed)\n", len(todos), len(todos)-done, done)

			healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
			defer cancel()
			health, err := a.apiClient.Health(healthCtx)
			if err != nil {
				a.io.Printf("Server:        %s (offline)\n", a.apiClient.BaseURL())
				return nil
			}
			a.io.Printf("Server:        %s (%s, version %s)\n", a.apiClient.BaseURL(), health.Status, health.Version)
			return nil
		}),
	}
}

func newResetPasswordCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a forgotten password with an emailed code",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			email, err := a.io.ReadInput("Email: ")
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			if err := a.auth.SendCode(ctx, email); err != nil {
				return err
			}
			a.io.Println("A reset code has been sent to your email.")

			code, err := a.io.ReadInput("Code: ")
			if err != nil {
				return fmt.Errorf("failed to read code: %w", err)
			}
			password, err := readNewPassword(a)
			if err != nil {
				return err
			}

			if err := a.auth.ResetPassword(ctx, email, code, password); err != nil {
				return err
			}

			// сервер отозвал все сессии; кэш без сессии не нужен
			if _, err := a.auth.Current(ctx); errors.Is(err, storage.ErrAuthNotFound) {
				if err := a.sync.Reset(ctx); err != nil {
					a.logger.Warn("Failed to clear local cache", slog.Any("error", err))
				}
			}

			a.io.Println("✓ Password changed. Please log in again.")
			return nil
		}),
	}
}

func readNewPassword(a *App) (string, error) {
	password, err := a.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := a.io.ReadPassword("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
