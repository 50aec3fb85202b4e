package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Verifier,ResultStore,EventPublisher

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"tradeverify/internal/verification/models"
	dErrors "tradeverify/pkg/domain-errors"
	"tradeverify/pkg/platform/httputil"
	"tradeverify/pkg/platform/sentinel"
	"tradeverify/pkg/requestcontext"
)

// persistTimeout bounds the background save and publish of one result.
const persistTimeout = 5 * time.Second

// Verifier runs the verification pipeline.
type Verifier interface {
	Verify(ctx context.Context, req models.Request) (*models.Result, error)
}

// ResultStore persists and reads verification results.
type ResultStore interface {
	Save(ctx context.Context, result *models.Result) error
	FindByID(ctx context.Context, verificationID string) (*models.Result, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*models.Result, error)
}

// EventPublisher announces completed verifications.
type EventPublisher interface {
	Publish(ctx context.Context, result *models.Result) error
}

// Handler wires verification endpoints to the pipeline and result store.
type Handler struct {
	verifier  Verifier
	store     ResultStore
	publisher EventPublisher
	logger    *slog.Logger

	pending sync.WaitGroup
}

// New constructs a verification handler. publisher may be nil.
func New(verifier Verifier, store ResultStore, publisher EventPublisher, logger *slog.Logger) *Handler {
	return &Handler{
		verifier:  verifier,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verifications", h.HandleVerify)
	r.Get("/verifications/{id}", h.HandleGet)
	r.Get("/invoices/{invoiceID}/verifications", h.HandleListByInvoice)
}

// Wait blocks until every background save and publish has finished.
func (h *Handler) Wait() {
	h.pending.Wait()
}

// HandleVerify handles POST /verifications.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.verifier.Verify(ctx, req.ToModel())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			h.logger.WarnContext(ctx, "verification abandoned",
				"request_id", requestID,
				"invoice_id", req.InvoiceID,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"invoice_id", req.InvoiceID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.persist(ctx, result)

	h.logger.InfoContext(ctx, "verification served",
		"request_id", requestID,
		"invoice_id", result.InvoiceID,
		"verification_id", result.VerificationID,
		"subject", requestcontext.Subject(ctx),
		"credit_rating", result.CreditRating,
		"is_valid", result.IsValid,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// persist saves and publishes the result in the background. Failures are
// logged and never change the response.
func (h *Handler) persist(ctx context.Context, result *models.Result) {
	ctx = context.WithoutCancel(ctx)
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, persistTimeout)
		defer cancel()

		if err := h.store.Save(ctx, result); err != nil {
			h.logger.ErrorContext(ctx, "failed to save verification result",
				"request_id", requestcontext.RequestID(ctx),
				"verification_id", result.VerificationID,
				"error", err,
			)
		}
		if h.publisher == nil {
			return
		}
		if err := h.publisher.Publish(ctx, result); err != nil {
			h.logger.WarnContext(ctx, "failed to publish verification event",
				"request_id", requestcontext.RequestID(ctx),
				"verification_id", result.VerificationID,
				"error", err,
			)
		}
	}()
}

// HandleGet handles GET /verifications/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	result, err := h.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "verification not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to load verification result",
			"request_id", requestcontext.RequestID(ctx),
			"verification_id", id,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleListByInvoice handles GET /invoices/{invoiceID}/verifications.
func (h *Handler) HandleListByInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invoiceID := chi.URLParam(r, "invoiceID")

	results, err := h.store.ListByInvoice(ctx, invoiceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list verification results",
			"request_id", requestcontext.RequestID(ctx),
			"invoice_id", invoiceID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verifications"))
		return
	}

	resp := &VerificationListResponse{
		InvoiceID:     invoiceID,
		Verifications: make([]*VerificationResponse, 0, len(results)),
	}
	for _, result := range results {
		resp.Verifications = append(resp.Verifications, FromResult(result))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
