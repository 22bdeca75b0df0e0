// Package login handles back-office authentication: password login
// against the operator accounts and session sign-out.
package login

import (
	"errors"
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/store/userstore"
	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/dalemusser/vitrine/internal/app/system/authutil"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides login handlers.
type Handler struct {
	users      *userstore.Store
	sessionMgr *auth.SessionManager
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		users:      userstore.New(db),
		sessionMgr: sessionMgr,
		logger:     logger,
	}
}

// Routes returns the auth endpoints.
//
// When mounted at /admin/api/auth:
//   - POST /login  - password login, issues a session cookie
//   - POST /logout - clears the session
//   - GET  /me     - current session user
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /admin/api/auth/login. Failures are reported
// uniformly so the endpoint does not leak which emails exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonutil.BadRequest(w, "email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		jsonutil.Unauthorized(w, "invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("failed to look up user", zap.Error(err))
		jsonutil.InternalError(w, "login failed")
		return
	}

	if !user.IsActive() {
		h.logger.Info("login rejected: account disabled",
			zap.String("user_id", user.ID.Hex()))
		jsonutil.Unauthorized(w, "invalid credentials")
		return
	}
	if !authutil.CheckPassword(req.Password, user.PasswordHash) {
		h.logger.Info("login rejected: bad password",
			zap.String("user_id", user.ID.Hex()))
		jsonutil.Unauthorized(w, "invalid credentials")
		return
	}

	if err := h.sessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		jsonutil.InternalError(w, "login failed")
		return
	}

	h.logger.Info("operator signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	jsonutil.OK(w, map[string]string{
		"id":    user.ID.Hex(),
		"name":  user.FullName,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Logout handles POST /admin/api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionMgr.SignOut(w, r); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
		jsonutil.InternalError(w, "logout failed")
		return
	}
	jsonutil.NoContent(w)
}

// Me handles GET /admin/api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "not signed in")
		return
	}
	jsonutil.OK(w, map[string]string{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	})
}
