package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ClementJar/IDV-sub000/internal/verification"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/platform/httputil"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// Service defines the interface for verification operations.
type Service interface {
	SearchMultipleSources(ctx context.Context, idNumber, userID string) *verification.MultiSourceResult
	Verify(ctx context.Context, idNumber, userID string) (*verification.VerificationSummary, error)
	AvailableTestIDs(ctx context.Context) ([]verification.TestID, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints on the router. The static
// available-test-ids route wins over the {idNumber} wildcard in chi's trie.
func (h *Handler) Register(r chi.Router) {
	r.Get("/verification/available-test-ids", h.HandleAvailableTestIDs)
	r.Get("/verification/multi-source/{idNumber}", h.HandleMultiSourceSearch)
	r.Get("/verification/{idNumber}", h.HandleVerify)
}

// idNumberParam extracts and unescapes the idNumber path segment. ID numbers
// contain "/" (e.g. "19850615/10/1"), so clients send them percent-escaped
// and the orchestrator requires them decoded.
func idNumberParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "idNumber")
	idNumber, err := url.PathUnescape(raw)
	if err != nil || idNumber == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid id number")
	}
	return idNumber, nil
}

// HandleMultiSourceSearch handles GET /verification/multi-source/{idNumber}.
// The response is always a 200-shaped per-source trace, even when every
// source probe failed.
func (h *Handler) HandleMultiSourceSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	idNumber, err := idNumberParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result := h.service.SearchMultipleSources(ctx, idNumber, userID)

	h.logger.InfoContext(ctx, "multi-source search completed",
		"request_id", requestID,
		"user_id", userID,
		"status", result.OverallStatus,
		"sources_probed", probedCount(result.SourceResults),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromMultiSourceResult(result))
}

func probedCount(results []verification.SourceSearchResult) int {
	n := 0
	for _, r := range results {
		if r.Status != verification.SearchSkipped && r.Status != verification.SearchWaiting {
			n++
		}
	}
	return n
}

// HandleVerify handles GET /verification/{idNumber}, the legacy single-path
// search. Store failures here surface as hard errors, unlike the
// multi-source path.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	idNumber, err := idNumberParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.service.Verify(ctx, idNumber, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSummary(summary))
}

// HandleAvailableTestIDs handles GET /verification/available-test-ids.
func (h *Handler) HandleAvailableTestIDs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	ids, err := h.service.AvailableTestIDs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "available test IDs lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromTestIDs(ids))
}
