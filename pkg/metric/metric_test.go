package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatusClassOf(t *testing.T) {
	testCases := map[int]string{
		200: "2xx",
		201: "2xx",
		304: "3xx",
		400: "4xx",
		404: "4xx",
		500: "5xx",
		503: "5xx",
	}

	for status, expected := range testCases {
		require.Equal(t, expected, statusClassOf(status), "status %d", status)
	}
}

func TestFactory_Handler(t *testing.T) {
	f := NewFactory(StorageDriver("postgres"))

	f.HTTP().Request(http.MethodGet, "/items/:id", http.StatusNotFound, 10*time.Millisecond)
	f.HTTP().SlowRequest(http.MethodGet, "/items", http.StatusInternalServerError, time.Second)
	f.Storage().ObserveDuration("find", 5*time.Millisecond)
	f.Storage().IncrementFailures("find")
	f.Events().Published("items", "created")
	f.Events().Failed("items", "deleted", "write_failed")

	rec := httptest.NewRecorder()
	f.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	require.Contains(t, text, `http_requests_total{method="GET",path="/items/:id",status="4xx"} 1`)
	require.Contains(t, text, `http_slow_requests_total{method="GET",path="/items",status="5xx"} 1`)
	require.Contains(t, text, `storage_operation_failures_total{driver="postgres",operation="find"} 1`)
	require.Contains(t, text, `item_events_published_total{topic="items",type="created"} 1`)
	require.Contains(t, text, `item_events_failed_total{reason="write_failed",topic="items",type="deleted"} 1`)
}

func TestFactory_IndependentRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		NewFactory()
		NewFactory()
	})
}
