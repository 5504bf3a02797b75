package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ClementJar/IDV-sub000/internal/reports"
	"github.com/ClementJar/IDV-sub000/pkg/platform/httputil"
)

// Service defines the interface for reporting operations.
type Service interface {
	Dashboard(ctx context.Context) (*reports.Dashboard, error)
}

// Handler wires reporting endpoints to the reports service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the reporting endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reports/dashboard", h.HandleDashboard)
}

// HandleDashboard handles GET /reports/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dashboard)
}
