package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"edigivault/internal"
	"edigivault/internal/session"
	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeySession      contextKey = "session"
	contextKeyDraftSession contextKey = "draft_session"
)

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

// RequireSession authenticates the request from the Authorization header or
// the encrypted access token cookie, and puts the verified session on the
// request context.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerToken(r)

		if accessToken == "" {
			cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
			if err != nil {
				s.logger.Debug("no credentials on request")
				s.respondUnauthorized(w)
				return
			}
			if err := s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken); err != nil {
				s.logger.WithError(err).Error("failed to decrypt access token")
				s.respondUnauthorized(w)
				return
			}
		}

		sess, err := s.sessions.Verify(r.Context(), accessToken)
		if err != nil {
			s.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeySession, sess)

		s.logger.WithField("user_id", sess.UserID).Debug("authenticated user")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnsureDraftSession guarantees every authenticated request carries a draft
// session ID, minting one on first contact. The ID scopes the server-held
// workflow drafts, separate from the auth session so sign-out does not have
// to discard in-progress work.
func (s *Service) EnsureDraftSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var draftID string

		cookie, err := r.Cookie(internal.COOKIE_DRAFT_SESSION_NAME)
		if err == nil {
			if err := s.cookie.Decode(internal.COOKIE_DRAFT_SESSION_NAME, cookie.Value, &draftID); err != nil {
				s.logger.WithError(err).Debug("unreadable draft session cookie, reissuing")
				draftID = ""
			}
		}

		if draftID == "" {
			draftID = utils.NanoID()

			encoded, err := s.cookie.Encode(internal.COOKIE_DRAFT_SESSION_NAME, draftID)
			if err != nil {
				s.logger.WithError(err).Error("failed to encode draft session cookie")
				s.internalServerError(w)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     internal.COOKIE_DRAFT_SESSION_NAME,
				Value:    encoded,
				HttpOnly: true,
				Secure:   true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				Path:     "/",
			})
		}

		ctx := context.WithValue(r.Context(), contextKeyDraftSession, draftID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (s *Service) sessionFromContext(ctx context.Context) (*session.Session, error) {
	sess, ok := ctx.Value(contextKeySession).(*session.Session)
	if !ok {
		return nil, &types.AuthError{Reason: "no session on request"}
	}
	return sess, nil
}

func (s *Service) draftSessionFromContext(ctx context.Context) string {
	draftID, _ := ctx.Value(contextKeyDraftSession).(string)
	return draftID
}
