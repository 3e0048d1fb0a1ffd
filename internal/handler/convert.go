package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"draftconv/internal/config"
	"draftconv/internal/domain/models/document"
	editorSvc "draftconv/internal/domain/services/editor"
	"draftconv/internal/httputil"
	"draftconv/internal/utils"
)

// maxBodyBytes leaves room for the JSON envelope around an HTML body.
const maxBodyBytes = config.MaxHTMLBytes + 1<<20

// ConvertHandler handles conversion HTTP requests
type ConvertHandler struct {
	service editorSvc.ConversionService
	logger  *slog.Logger
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(service editorSvc.ConversionService, logger *slog.Logger) *ConvertHandler {
	return &ConvertHandler{
		service: service,
		logger:  logger,
	}
}

// DocumentRequest carries a document tree.
type DocumentRequest struct {
	Document document.Document `json:"document"`
}

// DocumentResponse carries a document tree.
type DocumentResponse struct {
	Document document.Document `json:"document"`
}

// HTMLRequest carries embed HTML.
type HTMLRequest struct {
	HTML string `json:"html"`
}

// HTMLResponse carries embed HTML.
type HTMLResponse struct {
	HTML string `json:"html"`
}

// MarkdownResponse carries rendered markdown.
type MarkdownResponse struct {
	Markdown  string `json:"markdown"`
	WordCount int    `json:"word_count"`
}

// ToHTML serializes a document.
// POST /api/convert/html
func (h *ConvertHandler) ToHTML(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := httputil.ParseJSON(w, r, &req, maxBodyBytes); err != nil {
		handleParseError(w, err)
		return
	}

	html, err := h.service.ToHTML(r.Context(), req.Document)
	if err != nil {
		h.logger.Info("serialization rejected",
			"request_id", httputil.GetRequestID(r),
			"error", err,
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, HTMLResponse{HTML: html})
}

// ToDocument parses embed HTML into a normalized document.
// POST /api/convert/document
func (h *ConvertHandler) ToDocument(w http.ResponseWriter, r *http.Request) {
	var req HTMLRequest
	if err := httputil.ParseJSON(w, r, &req, maxBodyBytes); err != nil {
		handleParseError(w, err)
		return
	}

	doc, err := h.service.ToDocument(r.Context(), req.HTML)
	if err != nil {
		h.logger.Error("deserialization failed",
			"request_id", httputil.GetRequestID(r),
			"error", err,
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

// Normalize repairs a document.
// POST /api/normalize
func (h *ConvertHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := httputil.ParseJSON(w, r, &req, maxBodyBytes); err != nil {
		handleParseError(w, err)
		return
	}

	doc, err := h.service.Normalize(r.Context(), req.Document)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

// ToMarkdown renders a document as markdown.
// POST /api/convert/markdown
func (h *ConvertHandler) ToMarkdown(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := httputil.ParseJSON(w, r, &req, maxBodyBytes); err != nil {
		handleParseError(w, err)
		return
	}

	markdown, err := h.service.ToMarkdown(r.Context(), req.Document)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, MarkdownResponse{
		Markdown:  markdown,
		WordCount: utils.CountWords(req.Document),
	})
}

// ListPlugins describes the registered node types.
// GET /api/plugins
func (h *ConvertHandler) ListPlugins(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.service.Plugins(r.Context()))
}

// HealthCheck reports liveness.
// GET /health
func (h *ConvertHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleParseError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, err.Error())
}
