// Package uploads accepts catalog imagery from the back office and
// stores it through the configured storage backend (local disk or S3).
package uploads

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadSize bounds the multipart form we are willing to parse.
const maxUploadSize = 16 << 20 // 16 MB

// allowedExtensions are the image types the storefront can serve.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Handler provides image upload handlers.
type Handler struct {
	fileStorage storage.Store
	publicBase  string
	logger      *zap.Logger
}

// NewHandler creates a new uploads Handler. publicBase is the URL
// prefix uploaded objects are served under, e.g. "/media".
func NewHandler(fileStorage storage.Store, publicBase string, logger *zap.Logger) *Handler {
	return &Handler{
		fileStorage: fileStorage,
		publicBase:  strings.TrimSuffix(publicBase, "/"),
		logger:      logger,
	}
}

// Routes returns the upload API.
//
// When mounted at /admin/api/uploads:
//   - POST / - multipart image upload, returns the public URL
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin", "editor"))
	r.Post("/", h.Upload)
	return r
}

// Upload handles POST /admin/api/uploads. The image arrives as the
// "file" part of a multipart form; the response carries the storage
// path and the public URL to embed in section or product content.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonutil.BadRequest(w, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		jsonutil.BadRequest(w, "unsupported image type")
		return
	}

	// Storage path: images/YYYY/MM/uuid.ext
	now := time.Now().UTC()
	storagePath := fmt.Sprintf("images/%04d/%02d/%s%s",
		now.Year(), int(now.Month()), uuid.New().String(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.fileStorage.Put(r.Context(), storagePath, file, opts); err != nil {
		h.logger.Error("failed to store upload",
			zap.String("path", storagePath),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to store upload")
		return
	}

	h.logger.Info("image uploaded",
		zap.String("path", storagePath),
		zap.Int64("size", header.Size))

	jsonutil.Created(w, map[string]any{
		"path": storagePath,
		"url":  h.publicBase + "/" + storagePath,
		"size": header.Size,
	})
}
