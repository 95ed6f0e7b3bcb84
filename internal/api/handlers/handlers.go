// Package handlers implements the HTTP API: statement uploads,
// transaction CRUD, job polling and advisor insights.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wealthmate/wealthmate/internal/advisor"
	"github.com/wealthmate/wealthmate/internal/api/middleware"
	"github.com/wealthmate/wealthmate/internal/domain"
	"github.com/wealthmate/wealthmate/internal/jobs"
	"github.com/wealthmate/wealthmate/internal/store"
)

// DefaultMaxUploadBytes caps the size of an uploaded statement file.
const DefaultMaxUploadBytes = 16 << 20

// StatementsHandler accepts statement uploads and hands them to the
// ingestion queue.
type StatementsHandler struct {
	publisher      jobs.Publisher
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewStatementsHandler creates a statements handler. maxUploadBytes <= 0
// means the default cap.
func NewStatementsHandler(publisher jobs.Publisher, maxUploadBytes int64, log zerolog.Logger) *StatementsHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &StatementsHandler{
		publisher:      publisher,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Upload handles POST /api/statements. The statement file travels in
// the multipart "file" field; ingestion runs asynchronously and the
// response carries a job ID to poll.
func (h *StatementsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Multipart field 'file' is required")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read uploaded statement")
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	if len(payload) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}

	job := &jobs.IngestStatementJob{
		OwnerID:  ownerID,
		FileName: header.Filename,
		Payload:  payload,
	}

	if err := h.publisher.PublishIngestStatement(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue ingestion job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue ingestion job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("owner_id", ownerID).
		Str("file_name", job.FileName).
		Int("bytes", len(payload)).
		Msg("Ingestion job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	store store.TransactionStore
	log   zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(st store.TransactionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		store: st,
		log:   log,
	}
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, err := h.store.ListByOwner(ctx, middleware.OwnerID(ctx))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	// Return array directly for frontend compatibility
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, transactions)
}

// Create handles POST /api/transactions, the manual entry form.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Kind        string  `json:"kind"`
		Category    string  `json:"category"`
		Date        string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	kind := domain.Kind(req.Kind)
	if kind != domain.KindExpense && kind != domain.KindIncome {
		middleware.WriteError(w, http.StatusBadRequest, "kind must be expense or income")
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	category := req.Category
	switch {
	case kind == domain.KindIncome:
		category = domain.CategoryIncome
	case category == "":
		category = domain.CategoryUncategorized
	case category != domain.CategoryUncategorized && !slices.Contains(domain.Categories, category):
		middleware.WriteError(w, http.StatusBadRequest, "unknown category")
		return
	}

	tx := domain.Transaction{
		ID:          uuid.New().String(),
		OwnerID:     middleware.OwnerID(ctx),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    category,
		Date:        date,
		Kind:        kind,
	}

	stored, err := h.store.Insert(ctx, tx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to insert transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, stored)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Purge handles DELETE /api/transactions, removing the owner's whole
// history.
func (h *TransactionsHandler) Purge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerID(ctx)

	if err := h.store.PurgeOwner(ctx, ownerID); err != nil {
		h.log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to purge transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to purge transactions")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs, scoped to the acting owner.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	filter := jobs.JobFilter{
		OwnerID: middleware.OwnerID(ctx),
		Status:  jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}

// AdviceHandler serves advisor insights.
type AdviceHandler struct {
	advisor *advisor.Advisor
	store   store.TransactionStore
	log     zerolog.Logger
}

// NewAdviceHandler creates a new advice handler.
func NewAdviceHandler(adv *advisor.Advisor, st store.TransactionStore, log zerolog.Logger) *AdviceHandler {
	return &AdviceHandler{
		advisor: adv,
		store:   st,
		log:     log,
	}
}

// Get handles GET /api/advice.
func (h *AdviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerID(ctx)

	transactions, err := h.store.ListByOwner(ctx, ownerID)
	if err != nil {
		h.log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to load transactions for advice")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	insight := h.advisor.Advise(ctx, transactions)
	middleware.WriteJSON(w, http.StatusOK, insight)
}
