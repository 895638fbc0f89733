package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// family returns the gathered metric family with the given fully qualified name.
func family(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics("kakashi")
	m.RegisterCounter("signup_requests_total", "signups")
	m.RegisterCounter("signup_requests_total", "registered twice")

	m.IncCounter("signup_requests_total")
	m.AddCounter("signup_requests_total", 2)
	m.IncCounter("unknown_total")

	f := family(t, m, "kakashi_signup_requests_total")
	assert.Equal(t, float64(3), f.GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, "signups", f.GetHelp())
}

func TestMetrics_Vecs(t *testing.T) {
	m := NewMetrics("kakashi")
	m.RegisterCounterVec("provider_requests_total", "provider calls", []string{"provider", "outcome"})
	m.RegisterHistogramVec("provider_request_duration_seconds", "provider latency", nil, []string{"provider"})
	m.RegisterGaugeVec("circuit_breaker_state", "breaker state", []string{"provider"})

	m.IncCounterVec("provider_requests_total", "tmdb", "success")
	m.IncCounterVec("provider_requests_total", "tmdb", "success")
	m.IncCounterVec("provider_requests_total", "serpapi", "auth_failure")
	m.ObserveHistogramVec("provider_request_duration_seconds", 0.25, "tmdb")
	m.SetGaugeVec("circuit_breaker_state", 2, "bedrock")

	tests := []struct {
		name    string
		family  string
		samples int
	}{
		{name: "counter vec has one series per label set", family: "kakashi_provider_requests_total", samples: 2},
		{name: "histogram vec", family: "kakashi_provider_request_duration_seconds", samples: 1},
		{name: "gauge vec", family: "kakashi_circuit_breaker_state", samples: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, family(t, m, tt.family).GetMetric(), tt.samples)
		})
	}

	gauge := family(t, m, "kakashi_circuit_breaker_state").GetMetric()[0]
	assert.Equal(t, float64(2), gauge.GetGauge().GetValue())
}

func TestMetrics_HistogramAndGauge(t *testing.T) {
	m := NewMetrics("kakashi")
	m.RegisterHistogram("login_duration_seconds", "login latency", []float64{0.1, 1})
	m.RegisterGauge("active_sessions", "sessions")

	m.ObserveHistogram("login_duration_seconds", 0.05)
	m.ObserveHistogram("login_duration_seconds", 0.5)
	m.SetGauge("active_sessions", 4)

	h := family(t, m, "kakashi_login_duration_seconds").GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.Equal(t, float64(4), family(t, m, "kakashi_active_sessions").GetMetric()[0].GetGauge().GetValue())
}
