package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"docshare/internal/config"
	"docshare/internal/domain/models"
	"docshare/internal/domain/services"
	"docshare/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService     services.DocumentService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService:     docService,
		maxUploadBytes: config.MaxUploadBytes,
		logger:         logger,
	}
}

// ListDocuments lists documents
// GET /api/documents?folder=&filter=&search=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	docs, err := h.docService.ListDocuments(r.Context(), viewer, models.DocumentQuery{
		FolderID: q.Get("folder"),
		Filter:   models.DocumentFilter(q.Get("filter")),
		Search:   q.Get("search"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument returns one document
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// StarDocument sets or clears the caller's star
// PUT /api/documents/{id}/star
func (h *DocumentHandler) StarDocument(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Starred bool `json:"starred"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docService.StarDocument(r.Context(), viewer, id, req.Starred)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), viewer, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadDocument relays a multipart upload to the backend without buffering it
// POST /api/documents/upload
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	if r.ContentLength > h.maxUploadBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}

	// Large files may take longer than the server read timeout
	if err := http.NewResponseController(w).SetReadDeadline(time.Time{}); err != nil {
		h.logger.Debug("read deadline not extended", "error", err)
	}

	doc, err := h.docService.UploadDocument(r.Context(), viewer, &models.UploadRequest{
		ContentType:   r.Header.Get("Content-Type"),
		ContentLength: r.ContentLength,
		Body:          http.MaxBytesReader(w, r.Body, h.maxUploadBytes),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// DownloadDocument streams the file as an attachment
// GET /api/documents/{id}/download
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, models.FileDownload)
}

// ViewDocument streams the file for inline display
// GET /api/documents/{id}/view
func (h *DocumentHandler) ViewDocument(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, models.FileView)
}

func (h *DocumentHandler) serveFile(w http.ResponseWriter, r *http.Request, mode models.FileMode) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	file, err := h.docService.OpenDocument(r.Context(), viewer, id, mode)
	if err != nil {
		handleError(w, err)
		return
	}
	defer file.Body.Close()

	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("write deadline not extended", "error", err)
	}

	header := w.Header()
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	header.Set("X-Content-Type-Options", "nosniff")
	if file.ContentDisposition != "" {
		header.Set("Content-Disposition", file.ContentDisposition)
	} else if mode == models.FileDownload {
		header.Set("Content-Disposition", "attachment")
	}
	if file.ContentLength >= 0 {
		header.Set("Content-Length", strconv.FormatInt(file.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	// headers are sent; a broken stream can only be logged
	if n, err := io.Copy(w, file.Body); err != nil {
		h.logger.Warn("document stream interrupted",
			"id", id,
			"mode", mode,
			"bytes", n,
			"error", err,
		)
	}
}
