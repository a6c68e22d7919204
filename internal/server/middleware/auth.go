package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap/internal/server/response"
)

// AuthConfig holds API-key authentication settings.
// An empty APIKey disables the check.
type AuthConfig struct {
	APIKey      string
	HeaderName  string
	PublicPaths []string
}

// Auth rejects requests without the configured API key. The key is read
// from HeaderName, then from an Authorization bearer token.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	if config.HeaderName == "" {
		config.HeaderName = "X-API-Key"
	}
	public := make(map[string]struct{}, len(config.PublicPaths))
	for _, p := range config.PublicPaths {
		public[p] = struct{}{}
	}
	want := []byte(config.APIKey)

	return func(next http.Handler) http.Handler {
		if config.APIKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			key := apiKey(r, config.HeaderName)
			if key == "" || subtle.ConstantTimeCompare([]byte(key), want) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", key != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing API key",
					"Send the key in the "+config.HeaderName+" header or as a bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func apiKey(r *http.Request, header string) string {
	if key := r.Header.Get(header); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return auth
}
