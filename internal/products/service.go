package products

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// ClientLookup resolves client IDs so enrollments only attach to clients
// that actually exist.
type ClientLookup interface {
	GetByID(ctx context.Context, id string) (*clients.Client, error)
}

// Service manages product enrollments for registered clients.
type Service struct {
	enrollments EnrollmentStore
	clientStore ClientLookup
	logger      *slog.Logger
}

func NewService(enrollments EnrollmentStore, clientStore ClientLookup, logger *slog.Logger) *Service {
	return &Service{
		enrollments: enrollments,
		clientStore: clientStore,
		logger:      logger,
	}
}

// Catalog lists the available products.
func (s *Service) Catalog(_ context.Context) []Product {
	return Catalog()
}

// Attach enrolls a client in a catalog product.
func (s *Service) Attach(ctx context.Context, clientID, productCode string) (*Enrollment, error) {
	if _, ok := FindProduct(productCode); !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown product code")
	}

	if _, err := s.clientStore.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "lookup client", err)
	}

	enrollment := Enrollment{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		ProductCode: productCode,
		EnrolledBy:  requestcontext.UserID(ctx),
		CreatedAt:   requestcontext.Now(ctx).UTC(),
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, dErrors.New(dErrors.CodeConflict, "client already enrolled in product")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create enrollment", err)
	}

	s.logger.InfoContext(ctx, "product attached",
		"client_id", clientID,
		"product_code", productCode,
	)
	return &enrollment, nil
}

// ListByClient lists a client's enrollments.
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Enrollment, error) {
	if _, err := s.clientStore.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "lookup client", err)
	}
	list, err := s.enrollments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list enrollments", err)
	}
	return list, nil
}
