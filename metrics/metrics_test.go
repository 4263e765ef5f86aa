package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStatementOutcome(t *testing.T) {
	before := testutil.ToFloat64(dbQueries.WithLabelValues("SQLite", "exec", "error"))
	RecordStatement("SQLite", "exec", time.Millisecond, errors.New("boom"))
	after := testutil.ToFloat64(dbQueries.WithLabelValues("SQLite", "exec", "error"))
	assert.Equal(t, before+1, after)
}

func TestRecordAtomicOutcome(t *testing.T) {
	RecordAtomic("SQLite", "compensating", nil)
	RecordAtomic("SQLite", "compensating", errors.New("failed"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(atomicUnits.WithLabelValues("SQLite", "compensating", "rolled_back")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(atomicUnits.WithLabelValues("SQLite", "compensating", "committed")), 1.0)
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordHTTP("get", "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mentesana_http_requests_total{method="GET",route="unmatched",status="404"}`)
}
