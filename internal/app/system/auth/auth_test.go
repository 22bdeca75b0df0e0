package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const testSessionKey = "this-is-a-32-character-long-key!"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testSessionKey, "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return sm
}

func TestNewSessionManager(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		sessionKey string
		secure     bool
		wantErr    bool
	}{
		{
			name:       "valid key dev mode",
			sessionKey: testSessionKey,
			secure:     false,
			wantErr:    false,
		},
		{
			name:       "valid key prod mode",
			sessionKey: testSessionKey,
			secure:     true,
			wantErr:    false,
		},
		{
			name:       "empty key",
			sessionKey: "",
			secure:     false,
			wantErr:    true,
		},
		{
			name:       "weak key dev mode",
			sessionKey: "short",
			secure:     false,
			wantErr:    false, // Warning but allowed in dev
		},
		{
			name:       "weak key prod mode",
			sessionKey: "short",
			secure:     true,
			wantErr:    true, // Error in prod
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := NewSessionManager(tt.sessionKey, "test-session", "", time.Hour, tt.secure, logger)

			if tt.wantErr {
				if err == nil {
					t.Error("NewSessionManager() expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("NewSessionManager() error = %v", err)
				}
				if sm == nil {
					t.Error("NewSessionManager() returned nil")
				}
			}
		})
	}
}

func TestNewSessionManager_DefaultName(t *testing.T) {
	sm, err := NewSessionManager(testSessionKey, "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	if sm.name != "vitrine-session" {
		t.Errorf("empty name should default to vitrine-session, got %q", sm.name)
	}
}

func TestCurrentUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := CurrentUser(r); ok {
		t.Error("CurrentUser() on a bare request should report not found")
	}

	u := &SessionUser{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"}
	r = WithTestUser(r, u)

	got, ok := CurrentUser(r)
	if !ok {
		t.Fatal("CurrentUser() should find injected user")
	}
	if got.ID != "u1" || got.Role != "admin" {
		t.Errorf("CurrentUser() = %+v, want injected user", got)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newTestManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		user       *SessionUser
		wantStatus int
	}{
		{"no user", nil, http.StatusUnauthorized},
		{"wrong role", &SessionUser{ID: "u1", Role: "editor"}, http.StatusForbidden},
		{"matching role", &SessionUser{ID: "u1", Role: "admin"}, http.StatusOK},
		{"role case insensitive", &SessionUser{ID: "u1", Role: "Admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/api/sections", nil)
			if tt.user != nil {
				r = WithTestUser(r, tt.user)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	sm := newTestManager(t)

	handler := sm.RequireRole("admin", "editor")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, role := range []string{"admin", "editor"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = WithTestUser(r, &SessionUser{ID: "u1", Role: role})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("role %q: status = %d, want 200", role, w.Code)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = WithTestUser(r, &SessionUser{ID: "u1", Role: "viewer"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("role viewer: status = %d, want 403", w.Code)
	}
}

// fetcherFunc adapts a function to the UserFetcher interface.
type fetcherFunc func(ctx context.Context, userID string) *SessionUser

func (f fetcherFunc) FetchUser(ctx context.Context, userID string) *SessionUser {
	return f(ctx, userID)
}

func TestSignInLoadSignOut(t *testing.T) {
	sm := newTestManager(t)
	sm.SetUserFetcher(fetcherFunc(func(_ context.Context, userID string) *SessionUser {
		if userID == "u42" {
			return &SessionUser{ID: "u42", Name: "Ada", Email: "ada@example.com", Role: "admin"}
		}
		return nil
	}))

	// Sign in and capture the session cookie.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/api/auth/login", nil)
	if err := sm.SignIn(w, r, "u42"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn() set no cookie")
	}

	// Replay the cookie through the middleware.
	var seen *SessionUser
	mw := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
	}))

	r2 := httptest.NewRequest(http.MethodGet, "/admin/api/sections", nil)
	for _, c := range cookies {
		r2.AddCookie(c)
	}
	mw.ServeHTTP(httptest.NewRecorder(), r2)

	if seen == nil {
		t.Fatal("LoadSessionUser did not inject the user")
	}
	if seen.ID != "u42" || seen.Role != "admin" {
		t.Errorf("injected user = %+v, want u42/admin", seen)
	}

	// Sign out and confirm the replayed session no longer authenticates.
	w3 := httptest.NewRecorder()
	r3 := httptest.NewRequest(http.MethodPost, "/admin/api/auth/logout", nil)
	for _, c := range cookies {
		r3.AddCookie(c)
	}
	if err := sm.SignOut(w3, r3); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	seen = nil
	r4 := httptest.NewRequest(http.MethodGet, "/admin/api/sections", nil)
	for _, c := range w3.Result().Cookies() {
		r4.AddCookie(c)
	}
	mw.ServeHTTP(httptest.NewRecorder(), r4)
	if seen != nil {
		t.Errorf("user still injected after SignOut: %+v", seen)
	}
}

func TestLoadSessionUser_InvalidatesMissingUser(t *testing.T) {
	sm := newTestManager(t)
	sm.SetUserFetcher(fetcherFunc(func(_ context.Context, _ string) *SessionUser {
		return nil // user deleted or disabled
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := sm.SignIn(w, r, "gone"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	var seen *SessionUser
	mw := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
	}))

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r2.AddCookie(c)
	}
	mw.ServeHTTP(httptest.NewRecorder(), r2)

	if seen != nil {
		t.Errorf("stale session should not inject a user, got %+v", seen)
	}
}

func TestLoadSessionUser_GarbageCookie(t *testing.T) {
	sm := newTestManager(t)

	var called bool
	mw := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := CurrentUser(r); ok {
			t.Error("garbage cookie should not authenticate")
		}
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-session"})
	mw.ServeHTTP(httptest.NewRecorder(), r)

	if !called {
		t.Error("handler should run as anonymous on a garbage cookie")
	}
}

type fakeDecodeError struct{ decode bool }

func (e fakeDecodeError) Error() string    { return "fake cookie error" }
func (e fakeDecodeError) IsUsage() bool    { return false }
func (e fakeDecodeError) IsDecode() bool   { return e.decode }
func (e fakeDecodeError) IsInternal() bool { return !e.decode }
func (e fakeDecodeError) Cause() error     { return nil }

func TestIsDecodeError(t *testing.T) {
	if !isDecodeError(fakeDecodeError{decode: true}) {
		t.Error("decode error should classify as decode")
	}
	if isDecodeError(fakeDecodeError{decode: false}) {
		t.Error("internal error should not classify as decode")
	}
	if isDecodeError(errors.New("plain error")) {
		t.Error("plain error should not classify as decode")
	}
}

func TestSessionConfigError(t *testing.T) {
	err := &SessionConfigError{Message: "bad key"}
	if err.Error() != "bad key" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad key")
	}
}
