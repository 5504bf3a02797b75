package clients_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

func newClientService() (*clients.Service, *clients.InMemoryStore) {
	store := clients.NewInMemoryStore()
	return clients.NewService(store, slog.New(slog.DiscardHandler)), store
}

func sampleInput(idNumber string) clients.RegisterInput {
	return clients.RegisterInput{
		IDNumber:     idNumber,
		IDType:       "NationalIdentity",
		FullName:     "Mary Banda",
		DateOfBirth:  "1987-03-12",
		Gender:       "F",
		MobileNumber: "+260977123451",
		Province:     "Lusaka",
		District:     "Lusaka",
		PostalCode:   "10101",
		SourceSystem: "INRIS",
	}
}

func TestRegister_AssignsIdentityAndTimestamp(t *testing.T) {
	service, _ := newClientService()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithUserID(requestcontext.WithTime(context.Background(), at), "operator-1")

	client, err := service.Register(ctx, sampleInput("221151/61/1"))

	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "operator-1", client.RegisteredBy)
	assert.Equal(t, at, client.CreatedAt)
}

func TestRegister_DuplicateIDNumber(t *testing.T) {
	service, _ := newClientService()
	ctx := context.Background()

	_, err := service.Register(ctx, sampleInput("221151/61/1"))
	require.NoError(t, err)

	_, err = service.Register(ctx, sampleInput("221151/61/1"))
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeConflict, "id number already registered"))
}

func TestGet_NotFound(t *testing.T) {
	service, _ := newClientService()

	_, err := service.Get(context.Background(), "missing")

	require.ErrorIs(t, err, dErrors.New(dErrors.CodeNotFound, "client not found"))
}

func TestList_OrderedByRegistrationTime(t *testing.T) {
	service, _ := newClientService()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"354872/10/1", "221151/61/1", "ZN184392"} {
		ctx := requestcontext.WithTime(context.Background(), base.Add(time.Duration(i)*time.Minute))
		_, err := service.Register(ctx, sampleInput(id))
		require.NoError(t, err)
	}

	list, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "354872/10/1", list[0].IDNumber)
	assert.Equal(t, "ZN184392", list[2].IDNumber)
}

func TestRegisteredIDNumbersFeedTestIDExclusion(t *testing.T) {
	service, store := newClientService()

	_, err := service.Register(context.Background(), sampleInput("221151/61/1"))
	require.NoError(t, err)

	taken, err := store.RegisteredIDNumbers(context.Background())
	require.NoError(t, err)
	assert.Contains(t, taken, "221151/61/1")
}

func TestCountBySource(t *testing.T) {
	service, store := newClientService()
	ctx := context.Background()

	inris := sampleInput("221151/61/1")
	zra := sampleInput("19850615/10/1")
	zra.SourceSystem = "ZRA"
	zra2 := sampleInput("19910822/10/1")
	zra2.SourceSystem = "ZRA"

	for _, input := range []clients.RegisterInput{inris, zra, zra2} {
		_, err := service.Register(ctx, input)
		require.NoError(t, err)
	}

	counts, err := store.CountBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["INRIS"])
	assert.Equal(t, int64(2), counts["ZRA"])
}
