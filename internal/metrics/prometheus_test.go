package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() {
		Register(reg)
		Register(reg)
	})
}

func TestRecordEntryOperation(t *testing.T) {
	before := testutil.ToFloat64(EntryOperations.WithLabelValues("create", "success"))
	beforeErr := testutil.ToFloat64(EntryOperations.WithLabelValues("create", "error"))

	RecordEntryOperation("create", nil)
	RecordEntryOperation("create", errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(EntryOperations.WithLabelValues("create", "success")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(EntryOperations.WithLabelValues("create", "error")))
}

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure"))
	RecordAuthAttempt("login", errors.New("bad password"))
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/entries", "200"))
	RecordHTTPRequest("GET", "/entries", http.StatusOK, 12*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/entries", "200")))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	Init()
	RecordStatsCache("hit")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "journal_stats_cache_requests_total")
}
