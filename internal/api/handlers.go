// Package api is the HTTP surface: per-session uploads, summaries and
// insights, plus a stateless insight endpoint.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"casha/finance-advisor/internal/api/middleware"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/ingest"
	"casha/finance-advisor/internal/insight"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/internal/session"
	"casha/finance-advisor/internal/summary"
)

// multipartOverhead is allowed on top of the file bound for form framing.
const multipartOverhead = 1 << 20

// Handlers serves the API endpoints.
type Handlers struct {
	parser   *ingest.Parser
	sessions *session.Store
	insights *insight.Service
	logger   logging.Logger
}

// NewHandlers creates the API handlers.
func NewHandlers(parser *ingest.Parser, sessions *session.Store, insights *insight.Service, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Handlers{parser: parser, sessions: sessions, insights: insights, logger: logger}
}

// Routes registers the endpoints on a new ServeMux.
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", h.CreateSession)
	mux.HandleFunc("POST /api/sessions/{id}/upload", h.Upload)
	mux.HandleFunc("GET /api/sessions/{id}/summary", h.Summary)
	mux.HandleFunc("POST /api/sessions/{id}/insights", h.SessionInsights)
	mux.HandleFunc("POST /api/insights", h.Insights)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}

// Health handles GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CreateSession handles POST /api/sessions
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	h.logger.Info("Session created", logging.F(logging.FieldSessionID, s.ID))
	middleware.WriteJSON(w, http.StatusCreated, map[string]string{"id": s.ID})
}

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	SessionID    string               `json:"sessionId"`
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	Dropped      int                  `json:"dropped"`
	Currency     currency.Code        `json:"currency"`
	FileKind     ingest.FileKind      `json:"fileKind"`
}

// Upload handles POST /api/sessions/{id}/upload with a multipart "file"
// field. The session list is replaced only when the whole file parses.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	log := h.logger.WithField(logging.FieldSessionID, s.ID)

	if err := s.BeginParse(); err != nil {
		middleware.WriteError(w, http.StatusConflict, "A file is already being processed. Please wait.")
		return
	}
	// Releases the parse flag on every exit, panics included; a no-op after Commit.
	defer func() { _ = s.Abort() }()

	res, err := h.parseUpload(w, r)
	if err != nil {
		status := statusFor(err)
		log.WithError(err).Warn("Upload rejected", logging.F(logging.FieldStatus, status))
		middleware.WriteError(w, status, uploadMessage(err))
		return
	}

	code := summary.DetectCurrency(res.Transactions)
	if err := s.Commit(res.Transactions, code); err != nil {
		log.WithError(err).Error("Failed to store transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info("Upload processed",
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F(logging.FieldCurrency, code))
	middleware.WriteJSON(w, http.StatusOK, UploadResponse{
		SessionID:    s.ID,
		Transactions: res.Transactions,
		Count:        len(res.Transactions),
		Dropped:      res.Dropped,
		Currency:     code,
		FileKind:     res.Kind,
	})
}

var errNoFile = errors.New("no file uploaded")

func (h *Handlers) parseUpload(w http.ResponseWriter, r *http.Request) (*ingest.Result, error) {
	limit := h.parser.Options().MaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, parsererror.FileTooLarge(r.ContentLength, limit)
		}
		return nil, errNoFile
	}
	defer file.Close()

	if header.Size > limit {
		return nil, parsererror.FileTooLarge(header.Size, limit)
	}
	return h.parser.ParseReader(header.Filename, file)
}

// SummaryResponse is returned by the summary endpoint. Labels hold one
// chart label per category, sized for the requested width class.
type SummaryResponse struct {
	Report *summary.Report `json:"report"`
	Labels []string        `json:"labels"`
}

// Summary handles GET /api/sessions/{id}/summary?width=narrow|medium|wide
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	width, err := summary.ParseWidthClass(r.URL.Query().Get("width"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.Snapshot()
	if len(snap.Transactions) == 0 {
		middleware.WriteError(w, http.StatusNotFound, "No transactions uploaded yet")
		return
	}

	report := summary.Summarize(snap.Transactions, snap.Currency)
	labels := make([]string, len(report.Categories))
	for i, c := range report.Categories {
		labels[i] = summary.SliceLabel(c.Category, c.Percentage, width)
	}
	middleware.WriteJSON(w, http.StatusOK, SummaryResponse{Report: report, Labels: labels})
}

// SessionInsights handles POST /api/sessions/{id}/insights
func (h *Handlers) SessionInsights(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	h.analyze(w, r, insight.Payload{Transactions: snap.Transactions, Currency: snap.Currency})
}

// Insights handles POST /api/insights with a JSON Payload body.
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.parser.Options().MaxBytes)

	var payload insight.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Currency != "" {
		code, ok := currency.ParseCode(string(payload.Currency))
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown currency code")
			return
		}
		payload.Currency = code
	}
	h.analyze(w, r, payload)
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request, payload insight.Payload) {
	report, err := h.insights.Analyze(r.Context(), payload)
	switch {
	case errors.Is(err, insight.ErrEmptyPayload):
		middleware.WriteError(w, http.StatusBadRequest, "No transactions to analyze")
	case err != nil:
		h.logger.WithError(err).Error("Error generating insights")
		middleware.WriteJSON(w, http.StatusBadGateway, map[string]string{
			"error":    "Insight service unavailable",
			"insights": insight.FallbackInsights,
		})
	default:
		middleware.WriteJSON(w, http.StatusOK, report)
	}
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

func uploadMessage(err error) string {
	if errors.Is(err, errNoFile) {
		return "No file uploaded. Send it in the \"file\" form field."
	}
	return parsererror.UserMessage(err)
}

// statusFor maps ingest errors to HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, errNoFile) {
		return http.StatusBadRequest
	}
	switch parsererror.KindOf(err) {
	case parsererror.KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case parsererror.KindUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case parsererror.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
