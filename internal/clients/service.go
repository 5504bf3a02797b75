package clients

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// RegisterInput carries the fields an operator submits when enrolling a
// verified person as a client.
type RegisterInput struct {
	IDNumber     string
	IDType       string
	FullName     string
	DateOfBirth  string
	Gender       string
	MobileNumber string
	Email        string
	Province     string
	District     string
	PostalCode   string
	SourceSystem string
}

// Service manages client registrations.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Register enrolls a new client. The ID number must not already be
// registered.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Client, error) {
	client := Client{
		ID:           uuid.NewString(),
		IDNumber:     input.IDNumber,
		IDType:       input.IDType,
		FullName:     input.FullName,
		DateOfBirth:  input.DateOfBirth,
		Gender:       input.Gender,
		MobileNumber: input.MobileNumber,
		Email:        input.Email,
		Province:     input.Province,
		District:     input.District,
		PostalCode:   input.PostalCode,
		SourceSystem: input.SourceSystem,
		RegisteredBy: requestcontext.UserID(ctx),
		CreatedAt:    requestcontext.Now(ctx).UTC(),
	}

	if err := s.store.Create(ctx, client); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, dErrors.New(dErrors.CodeConflict, "id number already registered")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create client", err)
	}

	s.logger.InfoContext(ctx, "client registered",
		"client_id", client.ID,
		"source_system", client.SourceSystem,
	)
	return &client, nil
}

// Get returns a single registered client.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	client, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "get client", err)
	}
	return client, nil
}

// List returns all registered clients ordered by registration time.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list clients", err)
	}
	return list, nil
}
