package products_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	"github.com/ClementJar/IDV-sub000/internal/products"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

func newProductFixture(t *testing.T) (*products.Service, *clients.InMemoryStore) {
	t.Helper()
	clientStore := clients.NewInMemoryStore()
	service := products.NewService(products.NewInMemoryEnrollmentStore(), clientStore, slog.New(slog.DiscardHandler))
	return service, clientStore
}

func registerClient(t *testing.T, store *clients.InMemoryStore, id string) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), clients.Client{
		ID:        id,
		IDNumber:  "221151/61/1",
		CreatedAt: time.Now().UTC(),
	}))
}

func TestAttach(t *testing.T) {
	service, clientStore := newProductFixture(t)
	registerClient(t, clientStore, "c-1")
	ctx := requestcontext.WithUserID(context.Background(), "operator-1")

	enrollment, err := service.Attach(ctx, "c-1", "FUNERAL_STD")

	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, "operator-1", enrollment.EnrolledBy)

	list, err := service.ListByClient(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "FUNERAL_STD", list[0].ProductCode)
}

func TestAttach_UnknownProduct(t *testing.T) {
	service, clientStore := newProductFixture(t)
	registerClient(t, clientStore, "c-1")

	_, err := service.Attach(context.Background(), "c-1", "NOT_A_PRODUCT")

	require.ErrorIs(t, err, dErrors.New(dErrors.CodeNotFound, "unknown product code"))
}

func TestAttach_UnknownClient(t *testing.T) {
	service, _ := newProductFixture(t)

	_, err := service.Attach(context.Background(), "missing", "FUNERAL_STD")

	require.ErrorIs(t, err, dErrors.New(dErrors.CodeNotFound, "client not found"))
}

func TestAttach_DuplicateEnrollment(t *testing.T) {
	service, clientStore := newProductFixture(t)
	registerClient(t, clientStore, "c-1")
	ctx := context.Background()

	_, err := service.Attach(ctx, "c-1", "LIFE_TERM")
	require.NoError(t, err)

	_, err = service.Attach(ctx, "c-1", "LIFE_TERM")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeConflict, "client already enrolled in product"))
}

func TestCatalogIsStable(t *testing.T) {
	service, _ := newProductFixture(t)

	catalog := service.Catalog(context.Background())

	require.NotEmpty(t, catalog)
	_, ok := products.FindProduct(catalog[0].Code)
	assert.True(t, ok)
}
