package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"facilities/internal/collector"
	"facilities/internal/facility/models"
	"facilities/internal/facility/store"
	"facilities/internal/reload"
	"facilities/internal/reload/report"
	dErrors "facilities/pkg/domain-errors"
)

// =============================================================================
// Reload Handler Test Suite
// =============================================================================
// Justification for handler tests: status mapping is the contract operators
// script against. Each pass outcome must land on a distinct status, and an
// aborted pass must still return its partial report.

type stubService struct {
	report   *reload.Report
	err      error
	received []models.Facility
}

func (s *stubService) Reload(context.Context) (*reload.Report, error) {
	return s.report, s.err
}

func (s *stubService) ReloadFacilities(_ context.Context, facilities []models.Facility) (*reload.Report, error) {
	s.received = facilities
	return s.report, s.err
}

func (s *stubService) LastReport(context.Context) (*reload.Report, error) {
	return s.report, s.err
}

type HandlerSuite struct {
	suite.Suite
	service *stubService
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &stubService{}
	r := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	s.router = r
}

func (s *HandlerSuite) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, path, body))
	return rec
}

func sampleReport() *reload.Report {
	return &reload.Report{
		ReloadID:          "r-1",
		TotalFacilities:   1,
		FacilitiesCreated: []string{"vha_A"},
		FacilitiesUpdated: []string{},
		FacilitiesMissing: []string{},
		FacilitiesRemoved: []string{},
		FacilitiesRevived: []string{},
		Problems:          []reload.Problem{},
	}
}

func (s *HandlerSuite) TestPullSuccess() {
	s.service.report = sampleReport()

	rec := s.do(http.MethodPost, "/internal/management/reload", nil)

	s.Equal(http.StatusOK, rec.Code)
	var got reload.Report
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&got))
	s.Equal([]string{"vha_A"}, got.FacilitiesCreated)
}

func (s *HandlerSuite) TestAbortedPassReturnsPartialReport() {
	partial := sampleReport()
	partial.Problems = []reload.Problem{{FacilityID: "vha_B", Description: "Failed to save record: boom"}}
	s.service.report = partial
	s.service.err = dErrors.Wrap(io.ErrUnexpectedEOF, dErrors.CodeInternal, "reload pass aborted")

	rec := s.do(http.MethodPost, "/internal/management/reload", nil)

	s.Equal(http.StatusInternalServerError, rec.Code)
	var got reload.Report
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&got))
	s.Equal(partial.Problems, got.Problems)
}

func (s *HandlerSuite) TestErrorStatusMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "collector failure", err: dErrors.New(dErrors.CodeUnavailable, "failed to collect facilities"), status: http.StatusServiceUnavailable},
		{name: "pass already running", err: dErrors.New(dErrors.CodeConflict, "a reload is already running"), status: http.StatusConflict},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.service.report, s.service.err = nil, tt.err

			rec := s.do(http.MethodPost, "/internal/management/reload", nil)

			s.Equal(tt.status, rec.Code)
			s.Contains(rec.Body.String(), string(dErrors.CodeOf(tt.err)))
		})
	}
}

func (s *HandlerSuite) TestPushAcceptsArrayAndEnvelope() {
	s.service.report = sampleReport()

	for _, body := range []string{
		`[{"id":"vha_A","type":"va_facilities"}]`,
		`{"data":[{"id":"vha_A","type":"va_facilities"}]}`,
	} {
		rec := s.do(http.MethodPost, "/internal/management/reload/facilities", strings.NewReader(body))
		s.Equal(http.StatusOK, rec.Code)
		s.Require().Len(s.service.received, 1)
		s.Equal("vha_A", s.service.received[0].ID)
	}
}

func (s *HandlerSuite) TestPushRejectsMalformedBody() {
	rec := s.do(http.MethodPost, "/internal/management/reload/facilities", strings.NewReader(`{"id":`))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Nil(s.service.received, "service not called")
}

func (s *HandlerSuite) TestLastReport() {
	s.service.err = dErrors.New(dErrors.CodeNotFound, "no reload report available")
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/internal/management/reload/last", nil).Code)

	s.service.report, s.service.err = sampleReport(), nil
	rec := s.do(http.MethodGet, "/internal/management/reload/last", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"reloadId":"r-1"`)
}

// =============================================================================
// Wired through the real service
// =============================================================================

func TestPushThenLastAgainstService(t *testing.T) {
	svc, err := reload.New(collector.NewStatic(), store.NewInMemoryFacilityStore(), store.NewInMemoryGraveyardStore(),
		reload.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		reload.WithReportStore(report.NewInMemory()),
	)
	require.NoError(t, err)
	r := chi.NewRouter()
	New(svc, nil).Register(r)

	push := httptest.NewRecorder()
	r.ServeHTTP(push, httptest.NewRequest(http.MethodPost, "/internal/management/reload/facilities",
		bytes.NewBufferString(`[{"id":"vha_A"},{"id":"notvalid"}]`)))
	require.Equal(t, http.StatusOK, push.Code)

	var pushed reload.Report
	require.NoError(t, json.NewDecoder(push.Body).Decode(&pushed))
	assert.Equal(t, []string{"vha_A"}, pushed.FacilitiesCreated)
	assert.Contains(t, pushed.Problems, reload.Problem{FacilityID: "notvalid", Description: "Cannot parse ID"})

	last := httptest.NewRecorder()
	r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/internal/management/reload/last", nil))
	require.Equal(t, http.StatusOK, last.Code)

	var got reload.Report
	require.NoError(t, json.NewDecoder(last.Body).Decode(&got))
	assert.Equal(t, pushed.ReloadID, got.ReloadID)
}
