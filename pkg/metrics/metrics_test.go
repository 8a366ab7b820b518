package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRegistration(t *testing.T) {
	before := testutil.ToFloat64(RegistrationsTotal.WithLabelValues(OutcomeCreated))
	ObserveRegistration(OutcomeCreated)
	after := testutil.ToFloat64(RegistrationsTotal.WithLabelValues(OutcomeCreated))
	require.Equal(t, before+1, after)
}

func TestHTTPCollectorsRegistered(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/citizen/register", "200").Inc()
	require.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/citizen/register", "200")), float64(1))

	HTTPRequestDuration.WithLabelValues("POST", "/api/v1/citizen/register").Observe(0.01)
}
