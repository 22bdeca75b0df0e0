// internal/app/system/auth/auth.go

// Package auth provides cookie-session management for the back
// office. The storefront read paths are anonymous; only /admin routes
// pass through this package.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/vitrine/internal/app/system/normalize"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// SessionUser is the authenticated operator in the request context.
// Data is fetched fresh from the database on each request so role
// changes and disabled accounts take effect immediately.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserFetcher fetches fresh user data from the database.
// Implementations return nil if the user is not found, disabled, or
// anything else that should invalidate the session.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// SessionManager encapsulates the cookie store and configuration.
type SessionManager struct {
	store       *sessions.CookieStore
	logger      *zap.Logger
	name        string
	userFetcher UserFetcher
}

// NewSessionManager creates a SessionManager.
//
//   - sessionKey: signing key for cookies (≥32 random chars in production)
//   - name: session cookie name
//   - domain: cookie domain (empty means current host)
//   - maxAge: session cookie lifetime
//   - secure: true for HTTPS production deployments
//
// A weak key fails startup in secure mode and logs a warning in dev.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}
	if len(sessionKey) < 32 {
		if secure {
			return nil, &SessionConfigError{Message: "session key is too weak for production; provide ≥32 random chars"}
		}
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)))
	}

	if name == "" {
		name = "vitrine-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SetUserFetcher sets the UserFetcher used by LoadSessionUser.
// Must be called after database initialization.
func (sm *SessionManager) SetUserFetcher(uf UserFetcher) {
	sm.userFetcher = uf
}

// SignIn marks the session as authenticated for the given user id.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag from the request context.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser returns middleware that injects the user into
// context if signed in, fetching fresh user data per request when a
// UserFetcher is configured.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			if isDecodeError(err) {
				// An undecodable cookie means a fresh session, not a failure.
				sm.logger.Debug("session cookie not decodable, starting fresh session",
					zap.String("path", r.URL.Path))
			} else {
				sm.logger.Warn("session store error",
					zap.String("path", r.URL.Path),
					zap.Error(err))
			}
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			userID, _ := sess.Values[userIDKey].(string)
			if sm.userFetcher != nil && userID != "" {
				if u := sm.userFetcher.FetchUser(r.Context(), userID); u != nil {
					r = withUser(r, u)
				} else {
					sm.logger.Info("session invalidated: user not found or disabled",
						zap.String("user_id", userID),
						zap.String("path", r.URL.Path))
					sess.Values[isAuthKey] = false
					delete(sess.Values, userIDKey)
					_ = sess.Save(r, w)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that ensures the request carries a
// user with one of the allowed roles. API callers get plain 401/403
// JSON-friendly statuses; there is no HTML login redirect in this
// surface.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[normalize.Role(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[normalize.Role(u.Role)]; !has {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isDecodeError reports whether a session error came from decoding the
// cookie (expired, tampered, or signed with an old key) rather than the
// store itself. Decode failures are expected after key rotation.
func isDecodeError(err error) bool {
	scErr, ok := err.(securecookie.Error)
	return ok && scErr.IsDecode()
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a SessionUser into the request context for
// testing handlers without running the session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
