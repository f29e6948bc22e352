package mcpsrv

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const corsAllowHeaders = "Content-Type, Accept, Authorization, X-API-Key, Mcp-Protocol-Version, Mcp-Session-Id"

// guard holds the per-endpoint request policy shared by every MCP request.
type guard struct {
	origins map[string]bool
	limiter *rate.Limiter
	apiKey  []byte
	logger  *zap.Logger
}

// WrapMCPHandler guards the MCP endpoint with an origin allowlist, a global
// rate limit and, when configured, an API key.
func WrapMCPHandler(next http.Handler, cfg Config, logger *zap.Logger) http.Handler {
	cfg = cfg.normalize()
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &guard{
		origins: make(map[string]bool, len(cfg.AllowedOrigins)),
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		logger:  logger,
	}
	for _, o := range cfg.AllowedOrigins {
		g.origins[o] = true
	}
	if cfg.APIKey != "" {
		g.apiKey = []byte(cfg.APIKey)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if done := g.cors(w, r); done {
			return
		}
		if !g.limiter.Allow() {
			logger.Debug("rate limited", zap.String("remote", r.RemoteAddr))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		if !g.authorized(r) {
			logger.Debug("rejected credentials", zap.String("remote", r.RemoteAddr))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cors applies the origin allowlist. It reports true when the response has
// already been written: a rejected origin or an answered preflight.
// Requests without an Origin header (CLI clients) pass through untouched.
func (g *guard) cors(w http.ResponseWriter, r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return false
	}
	if !g.origins[origin] {
		g.logger.Debug("rejected origin", zap.String("origin", origin))
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return true
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Vary", "Origin")
	h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	if r.Method != http.MethodOptions {
		return false
	}
	w.WriteHeader(http.StatusNoContent)
	return true
}

func (g *guard) authorized(r *http.Request) bool {
	if g.apiKey == nil {
		return true
	}
	for _, candidate := range credentials(r) {
		if subtle.ConstantTimeCompare([]byte(candidate), g.apiKey) == 1 {
			return true
		}
	}
	return false
}

// credentials lists the keys a request presents, from X-API-Key and from an
// "Authorization: Bearer <key>" header.
func credentials(r *http.Request) []string {
	var keys []string
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		keys = append(keys, k)
	}
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		keys = append(keys, fields[1])
	}
	return keys
}
