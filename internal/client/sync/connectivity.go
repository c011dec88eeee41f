package sync

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/iudanet/todosync/pkg/api"
)

// DefaultHealthInterval период опроса /health
const DefaultHealthInterval = 5 * time.Second

//go:generate moq -out health_mock.go . HealthChecker

// HealthChecker проверяет доступность сервера
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

type connState int32

const (
	stateUnknown connState = iota
	stateOnline
	stateOffline
)

// ConnectivityMonitor опрашивает сервер и вызывает onReconnect при переходе
// из offline в online
type ConnectivityMonitor struct {
	checker     HealthChecker
	logger      *slog.Logger
	onReconnect func()
	interval    time.Duration
	timeout     time.Duration
	state       atomic.Int32
}

// NewConnectivityMonitor создает монитор подключения
func NewConnectivityMonitor(checker HealthChecker, interval time.Duration, logger *slog.Logger, onReconnect func()) *ConnectivityMonitor {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &ConnectivityMonitor{
		checker:     checker,
		logger:      logger,
		onReconnect: onReconnect,
		interval:    interval,
		timeout:     interval,
	}
}

// Online сообщает результат последней проверки; до первой проверки true
func (m *ConnectivityMonitor) Online() bool {
	return connState(m.state.Load()) != stateOffline
}

// Run опрашивает сервер до отмены ctx
func (m *ConnectivityMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *ConnectivityMonitor) check(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.checker.Health(checkCtx)
	if ctx.Err() != nil {
		return
	}

	next := stateOnline
	if err != nil {
		next = stateOffline
	}

	prev := connState(m.state.Swap(int32(next)))
	switch {
	case prev == stateOffline && next == stateOnline:
		m.logger.Info("Server reachable again")
		if m.onReconnect != nil {
			m.onReconnect()
		}
	case prev != stateOffline && next == stateOffline:
		m.logger.Warn("Server unreachable", slog.Any("error", err))
	}
}
