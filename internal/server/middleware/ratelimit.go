package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iudanet/todosync/internal/server/handlers"
	"github.com/iudanet/todosync/pkg/api"
)

// RateLimiter ограничивает частоту запросов по ключу (обычно IP адрес)
// Для каждого ключа заводится отдельный token bucket из x/time/rate
type RateLimiter struct {
	visitors map[string]*visitor
	logger   *slog.Logger
	stopC    chan struct{}
	stopOnce sync.Once
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	mu       sync.Mutex

	// trustProxy разрешает брать IP из X-Forwarded-For / X-Real-IP
	trustProxy bool
}

// RateLimiterOption настраивает RateLimiter
type RateLimiterOption func(*RateLimiter)

// WithTrustedProxy включает доверие заголовкам X-Forwarded-For и X-Real-IP.
// Включать только за reverse proxy, который перезаписывает эти заголовки.
func WithTrustedProxy(trust bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает новый rate limiter
// rps - запросов в секунду, burst - максимальный всплеск
func NewRateLimiter(rps float64, burst int, logger *slog.Logger, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		logger:   logger,
		stopC:    make(chan struct{}),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
	for _, opt := range opts {
		opt(rl)
	}

	go rl.cleanup()

	return rl
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

// cleanup периодически удаляет неактивных посетителей
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(time.Now())
		case <-rl.stopC:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, key)
		}
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopC) })
}

// Middleware возвращает middleware, отвечающее 429 при превышении лимита
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r, rl.trustProxy)

		if !rl.Allow(key) {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded",
				slog.String("ip", key),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			w.Header().Set("Retry-After", "1")
			handlers.WriteError(w, rl.logger, http.StatusTooManyRequests, api.CodeTooManyRequests,
				"rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP извлекает IP адрес клиента из запроса.
// Заголовки прокси учитываются только при trustProxy, иначе их подделка
// дала бы каждому запросу свой bucket.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
