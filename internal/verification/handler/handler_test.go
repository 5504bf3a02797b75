package handler_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ClementJar/IDV-sub000/internal/verification"
	"github.com/ClementJar/IDV-sub000/internal/verification/handler"
	"github.com/ClementJar/IDV-sub000/internal/verification/handler/mocks"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/verification-mocks.go -package=mocks Service

func newTestRouter(service handler.Service) *chi.Mux {
	h := handler.New(service, slog.New(slog.DiscardHandler))
	router := chi.NewRouter()
	h.Register(router)
	return router
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(requestcontext.WithUserID(r.Context(), userID))
}

func TestMultiSourceSearch_DecodesEscapedIDNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	service.EXPECT().
		SearchMultipleSources(gomock.Any(), "19850615/10/1", "user-1").
		Return(&verification.MultiSourceResult{
			Success:       true,
			IDNumber:      "19850615/10/1",
			OverallStatus: verification.AttemptFound,
			FinalResult:   &verification.SourceRecord{IDNumber: "19850615/10/1", FullName: "John Mwanza", SourceName: verification.SourceZRA},
			SourceResults: []verification.SourceSearchResult{
				{SourceName: verification.SourceINRIS, Status: verification.SearchNotFound, Priority: 1},
				{SourceName: verification.SourceZRA, Status: verification.SearchFound, IsFound: true, Priority: 2},
				{SourceName: verification.SourceMNOAirtel, Status: verification.SearchSkipped, Priority: 3},
			},
		})

	router := newTestRouter(service)
	req := authed(httptest.NewRequest(http.MethodGet, "/verification/multi-source/19850615%2F10%2F1", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.MultiSourceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "19850615/10/1", body.IDNumber)
	assert.Equal(t, "Found", body.OverallStatus)
	require.Len(t, body.SourceResults, 3)
	assert.Equal(t, "Skipped", body.SourceResults[2].Status)
	require.NotNil(t, body.FinalResult)
	assert.Equal(t, "John Mwanza", body.FinalResult.FullName)
}

func TestMultiSourceSearch_RequiresAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	router := newTestRouter(service)
	req := httptest.NewRequest(http.MethodGet, "/verification/multi-source/221151%2F61%2F1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMultiSourceSearch_AllProbesFailedStillOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	service.EXPECT().
		SearchMultipleSources(gomock.Any(), "221151/61/1", "user-1").
		Return(&verification.MultiSourceResult{
			IDNumber:      "221151/61/1",
			OverallStatus: verification.AttemptNotFound,
			SourceResults: []verification.SourceSearchResult{
				{SourceName: verification.SourceINRIS, Status: verification.SearchError, ErrorMessage: "offline"},
				{SourceName: verification.SourceZRA, Status: verification.SearchError, ErrorMessage: "offline"},
				{SourceName: verification.SourceMNOAirtel, Status: verification.SearchError, ErrorMessage: "offline"},
			},
		})

	router := newTestRouter(service)
	req := authed(httptest.NewRequest(http.MethodGet, "/verification/multi-source/221151%2F61%2F1", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.MultiSourceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "offline", body.SourceResults[0].ErrorMessage)
}

func TestVerify_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	service.EXPECT().
		Verify(gomock.Any(), "ZN184392", "user-1").
		Return(&verification.VerificationSummary{
			Success:     true,
			Status:      verification.AttemptFound,
			ResultCount: 1,
			Source:      verification.AggregateSource,
			Matches: []verification.SourceRecord{
				{IDNumber: "ZN184392", FullName: "Agnes Tembo", SourceName: verification.SourceINRIS},
			},
		}, nil)

	router := newTestRouter(service)
	req := authed(httptest.NewRequest(http.MethodGet, "/verification/ZN184392", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Found", body.Status)
	assert.Equal(t, verification.AggregateSource, body.Source)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Agnes Tembo", body.Results[0].FullName)
}

func TestVerify_StoreFailureReturns500(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	service.EXPECT().
		Verify(gomock.Any(), "221151/61/1", "user-1").
		Return(nil, dErrors.Wrap(dErrors.CodeInternal, "verification lookup failed", errors.New("boom")))

	router := newTestRouter(service)
	req := authed(httptest.NewRequest(http.MethodGet, "/verification/221151%2F61%2F1", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, body, "error_description")
}

func TestAvailableTestIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	service.EXPECT().
		AvailableTestIDs(gomock.Any()).
		Return([]verification.TestID{
			{IDNumber: "221151/61/1", FullName: "Mary Banda", Source: verification.SourceINRIS, DisplaySource: "Integrated National Registration System"},
		}, nil)

	router := newTestRouter(service)
	req := authed(httptest.NewRequest(http.MethodGet, "/verification/available-test-ids", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []handler.TestIDResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Mary Banda", body[0].FullName)
}

func TestAvailableTestIDs_RouteBeatsWildcard(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	// The static segment must not fall through to the legacy {idNumber}
	// route, so Verify is never called.
	service.EXPECT().AvailableTestIDs(gomock.Any()).Return(nil, nil)

	router := newTestRouter(service)
	req := authed(httptest.NewRequest(http.MethodGet, "/verification/available-test-ids", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
