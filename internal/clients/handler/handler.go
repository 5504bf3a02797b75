package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/platform/httputil"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// Service defines the interface for client registration operations.
type Service interface {
	Register(ctx context.Context, input clients.RegisterInput) (*clients.Client, error)
	Get(ctx context.Context, id string) (*clients.Client, error)
	List(ctx context.Context) ([]clients.Client, error)
}

// Handler wires client registration endpoints to the clients service.
type Handler struct {
	service  Service
	logger   *slog.Logger
	validate *validator.Validate
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register mounts the client endpoints. All of them require a bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/clients", h.HandleRegister)
	r.Get("/clients", h.HandleList)
	r.Get("/clients/{id}", h.HandleGet)
}

// RegisterRequest is the client enrollment request body.
type RegisterRequest struct {
	IDNumber     string `json:"idNumber" validate:"required"`
	IDType       string `json:"idType" validate:"required,oneof=NationalIdentity Passport DrivingLicense"`
	FullName     string `json:"fullName" validate:"required"`
	DateOfBirth  string `json:"dateOfBirth" validate:"required"`
	Gender       string `json:"gender" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Province     string `json:"province" validate:"required"`
	District     string `json:"district" validate:"required"`
	PostalCode   string `json:"postalCode"`
	SourceSystem string `json:"sourceSystem" validate:"required"`
}

// ClientResponse is the public projection of a registered client.
type ClientResponse struct {
	ID           string    `json:"id"`
	IDNumber     string    `json:"idNumber"`
	IDType       string    `json:"idType"`
	FullName     string    `json:"fullName"`
	DateOfBirth  string    `json:"dateOfBirth"`
	Gender       string    `json:"gender"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email"`
	Province     string    `json:"province"`
	District     string    `json:"district"`
	PostalCode   string    `json:"postalCode"`
	SourceSystem string    `json:"sourceSystem"`
	RegisteredBy string    `json:"registeredBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

func fromClient(c *clients.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		IDNumber:     c.IDNumber,
		IDType:       c.IDType,
		FullName:     c.FullName,
		DateOfBirth:  c.DateOfBirth,
		Gender:       c.Gender,
		MobileNumber: c.MobileNumber,
		Email:        c.Email,
		Province:     c.Province,
		District:     c.District,
		PostalCode:   c.PostalCode,
		SourceSystem: c.SourceSystem,
		RegisteredBy: c.RegisteredBy,
		CreatedAt:    c.CreatedAt,
	}
}

// HandleRegister handles POST /clients.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(ctx, "client registration rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid client details"))
		return
	}

	client, err := h.service.Register(ctx, clients.RegisterInput{
		IDNumber:     req.IDNumber,
		IDType:       req.IDType,
		FullName:     req.FullName,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		Province:     req.Province,
		District:     req.District,
		PostalCode:   req.PostalCode,
		SourceSystem: req.SourceSystem,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, fromClient(client))
}

// HandleList handles GET /clients.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]ClientResponse, 0, len(list))
	for i := range list {
		out = append(out, fromClient(&list[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /clients/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromClient(client))
}
