// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
)

/*
TestMetrics_Counters verifies that recorded events show up in the registry.
*/
func TestMetrics_Counters(t *testing.T) {
	recorder := metrics.New()

	recorder.ObserveRequest(http.MethodGet, "/api/projects/{id}", 404, 3*time.Millisecond)
	recorder.AuthFailure("expired")
	recorder.AuthFailure("expired")
	recorder.LoginAttempt("failure")

	count, err := testutil.GatherAndCount(recorder.Registry(), "taakbeheer_auth_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(recorder.Registry(), "taakbeheer_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

/*
TestMetrics_Handler verifies the exposition endpoint.
*/
func TestMetrics_Handler(t *testing.T) {
	recorder := metrics.New()
	recorder.LoginAttempt("success")

	response := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `taakbeheer_login_attempts_total{outcome="success"} 1`)
}

/*
TestMetrics_Nil verifies that a nil recorder is a no-op.
*/
func TestMetrics_Nil(t *testing.T) {
	var recorder *metrics.Metrics

	assert.NotPanics(t, func() {
		recorder.ObserveRequest(http.MethodGet, "", 200, time.Millisecond)
		recorder.AuthFailure("missing")
		recorder.LoginAttempt("failure")
	})
	assert.Nil(t, recorder.Registry())
}
