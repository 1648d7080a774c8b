package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"serviceplan/internal"
	"serviceplan/pkg/types"

	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	contextKeyRole contextKey = "role"
)

type session struct {
	Role     types.Role
	IssuedAt time.Time
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LimitBody caps request bodies at the configured upload size.
func (s *Service) LimitBody(next http.Handler) http.Handler {
	limit := s.config.MaxUploadMB << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

// CSRF protects form posts when a CSRF_KEY is configured.
func (s *Service) CSRF(next http.Handler) http.Handler {
	if s.config.CSRFKey == "" {
		return next
	}

	protect := csrf.Protect(
		[]byte(s.config.CSRFKey),
		csrf.Secure(s.config.SecureCookies),
		csrf.Path("/"),
		csrf.TrustedOrigins(s.config.CSRFTrustedOrigins),
	)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil && !s.config.SecureCookies {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protect.ServeHTTP(w, r)
	})
}

// SessionMiddleware resolves the caller's role from the session cookie.
// Requests without a valid session are anonymous.
func (s *Service) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := types.RoleAnonymous

		if cookie, err := r.Cookie(s.config.CookieName); err == nil {
			var sess session
			if err := s.cookie.Decode(internal.SESSION_VALUE_NAME, cookie.Value, &sess); err != nil {
				s.logger.WithError(err).Debug("ignoring invalid session cookie")
			} else {
				role = sess.Role
			}
		}

		ctx := context.WithValue(r.Context(), contextKeyRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin answers 403 with an empty body for everyone but admins.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if roleFromContext(r.Context()) != types.RoleAdmin {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func roleFromContext(ctx context.Context) types.Role {
	role, _ := ctx.Value(contextKeyRole).(types.Role)
	return role
}
