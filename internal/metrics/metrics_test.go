package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.Completion(429, 100*time.Millisecond)
	r.Completion(200, time.Second)
	r.Completion(0, time.Second)
	r.Retry("transient")
	r.Reply("ok")
	r.Reply("ok")
	r.Retrieval("snippets", "hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.completions.WithLabelValues("429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.completions.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.completions.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.retries.WithLabelValues("transient")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.replies.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.retrieval.WithLabelValues("snippets", "hit")))

	n, err := testutil.GatherAndCount(r.Registry(), "intake_completion_calls_total", "intake_chat_replies_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `intake_chat_replies_total{outcome="ok"} 2`)
	assert.Contains(t, string(body), "intake_completion_duration_seconds_bucket")
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Completion(200, time.Second)
		r.Retry("nudge")
		r.Reply("fallback")
		r.Retrieval("data_sources", "attached")
	})
}
