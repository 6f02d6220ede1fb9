package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectFacilities(t *testing.T) {
	t.Run("decodes a bare array", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/collect/facilities", r.URL.Path)
			_, _ = w.Write([]byte(`[{"id":"vha_402","attributes":{"address":{"physical":{"zip":"32803-1234","state":"FL"}}}},{"id":"nca_888"}]`))
		})

		facilities, err := NewHTTPClient(srv.URL + "/").CollectFacilities(context.Background())
		require.NoError(t, err)
		require.Len(t, facilities, 2)
		assert.Equal(t, "vha_402", facilities[0].ID)
		assert.Equal(t, "32803-1234", facilities[0].Attributes.Address.Physical.Zip)
		assert.Equal(t, "nca_888", facilities[1].ID)
	})

	t.Run("decodes a data envelope", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"id":"vc_0101V"}]}`))
		})

		facilities, err := NewHTTPClient(srv.URL).CollectFacilities(context.Background())
		require.NoError(t, err)
		require.Len(t, facilities, 1)
		assert.Equal(t, "vc_0101V", facilities[0].ID)
	})

	t.Run("empty array is a valid collection", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		facilities, err := NewHTTPClient(srv.URL).CollectFacilities(context.Background())
		require.NoError(t, err)
		assert.Empty(t, facilities)
	})
}

func TestCollectFacilitiesErrorCategories(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		opts     []Option
		expected ErrorCategory
	}{
		{
			name: "non-200 status is an outage",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "collector down", http.StatusBadGateway)
			},
			expected: ErrorOutage,
		},
		{
			name: "malformed body is bad data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data": [`))
			},
			expected: ErrorBadData,
		},
		{
			name: "object without data is bad data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"items": []}`))
			},
			expected: ErrorBadData,
		},
		{
			name: "empty body is bad data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			expected: ErrorBadData,
		},
		{
			name: "slow collector is a timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(time.Second):
				case <-r.Context().Done():
				}
			},
			opts:     []Option{WithTimeout(20 * time.Millisecond)},
			expected: ErrorTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.handler)

			_, err := NewHTTPClient(srv.URL, tt.opts...).CollectFacilities(context.Background())
			require.Error(t, err)

			var ce *Error
			require.True(t, errors.As(err, &ce), "expected *collector.Error, got %T", err)
			assert.Equal(t, tt.expected, ce.Category)
			assert.Equal(t, tt.expected, CategoryOf(err))
		})
	}

	t.Run("unreachable collector is an outage", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPClient(url).CollectFacilities(context.Background())
		assert.Equal(t, ErrorOutage, CategoryOf(err))
	})
}

func TestDecodeFacilities(t *testing.T) {
	facilities, err := DecodeFacilities([]byte(` [{"id":"vba_306"}] `))
	require.NoError(t, err)
	require.Len(t, facilities, 1)
	assert.Equal(t, "vba_306", facilities[0].ID)
	assert.Equal(t, `{"id":"vba_306"}`, string(facilities[0].Raw))

	_, err = DecodeFacilities([]byte(`nope`))
	assert.Error(t, err)
}

func TestStatic(t *testing.T) {
	s := NewStatic()
	ctx := context.Background()

	facilities, err := s.CollectFacilities(ctx)
	require.NoError(t, err)
	assert.Empty(t, facilities)

	boom := errors.New("boom")
	s.Fail(boom)
	_, err = s.CollectFacilities(ctx)
	assert.ErrorIs(t, err, boom)

	s.Set()
	_, err = s.CollectFacilities(ctx)
	assert.NoError(t, err, "Set clears a previous failure")
	assert.Equal(t, ErrorCategory(""), CategoryOf(boom))
}
