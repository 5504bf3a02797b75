package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ClementJar/IDV-sub000/internal/products"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/platform/httputil"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// Service defines the interface for product operations.
type Service interface {
	Catalog(ctx context.Context) []products.Product
	Attach(ctx context.Context, clientID, productCode string) (*products.Enrollment, error)
	ListByClient(ctx context.Context, clientID string) ([]products.Enrollment, error)
}

// Handler wires product endpoints to the products service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the product endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/products", h.HandleCatalog)
	r.Post("/clients/{id}/products", h.HandleAttach)
	r.Get("/clients/{id}/products", h.HandleListByClient)
}

// ProductResponse is the public projection of a catalog product.
type ProductResponse struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	MonthlyPremium string `json:"monthlyPremium"`
	Currency       string `json:"currency"`
}

// AttachRequest is the enrollment request body.
type AttachRequest struct {
	ProductCode string `json:"productCode"`
}

// EnrollmentResponse is the public projection of an enrollment.
type EnrollmentResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	ProductCode string    `json:"productCode"`
	EnrolledBy  string    `json:"enrolledBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func fromEnrollment(e *products.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		ProductCode: e.ProductCode,
		EnrolledBy:  e.EnrolledBy,
		CreatedAt:   e.CreatedAt,
	}
}

// HandleCatalog handles GET /products.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog(r.Context())
	out := make([]ProductResponse, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, ProductResponse{
			Code:           p.Code,
			Name:           p.Name,
			Description:    p.Description,
			MonthlyPremium: p.MonthlyPremium,
			Currency:       p.Currency,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleAttach handles POST /clients/{id}/products.
func (h *Handler) HandleAttach(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AttachRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.ProductCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "productCode is required"))
		return
	}

	enrollment, err := h.service.Attach(ctx, chi.URLParam(r, "id"), req.ProductCode)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromEnrollment(enrollment))
}

// HandleListByClient handles GET /clients/{id}/products.
func (h *Handler) HandleListByClient(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]EnrollmentResponse, 0, len(list))
	for i := range list {
		out = append(out, fromEnrollment(&list[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
