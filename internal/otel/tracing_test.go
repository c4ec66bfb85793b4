package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relatosapi/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Init(&buf, "info", time.UTC)
	t.Cleanup(func() { logging.Init(nil, "info", nil) })
	return &buf
}

func TestInit_Disabled(t *testing.T) {
	logs := captureLogs(t)
	t.Setenv("OTEL_SDK_DISABLED", "true")

	shutdown, err := Init(context.Background())

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, logs.String(), `"event":"tracing_configured"`)
	assert.Contains(t, logs.String(), `"tracing_enabled":false`)
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	logs := captureLogs(t)
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	shutdown, err := Init(context.Background())

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, logs.String(), `"event":"tracing_init_failed"`)
	assert.Contains(t, logs.String(), "unsupported OTLP protocol: carrier-pigeon")
}

func TestBuildSampler(t *testing.T) {
	tests := []struct {
		sampler string
		arg     string
		want    string
	}{
		{sampler: "always_on", want: "AlwaysOnSampler"},
		{sampler: "always_off", want: "AlwaysOffSampler"},
		{sampler: "traceidratio", arg: "0.25", want: "TraceIDRatioBased{0.25}"},
		{sampler: "parentbased_traceidratio", arg: "oops", want: "ParentBased{root:AlwaysOnSampler"},
		{sampler: "unknown", want: "ParentBased{root:AlwaysOnSampler"},
	}

	for _, tt := range tests {
		t.Run(tt.sampler, func(t *testing.T) {
			s := settings{sampler: tt.sampler, samplerArg: tt.arg}
			assert.Contains(t, s.buildSampler().Description(), tt.want)
		})
	}
}

func TestReadSettings(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")
	t.Setenv("OTEL_TRACES_SAMPLER", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	s := readSettings()
	assert.False(t, s.disabled)
	assert.Equal(t, defaultServiceName, s.serviceName)
	assert.Equal(t, "grpc", s.protocol)
	assert.Equal(t, "http://collector:4317", s.endpoint)
	assert.Equal(t, "parentbased_traceidratio", s.sampler)
	assert.Equal(t, "1.0", s.samplerArg)

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://traces:4318")
	assert.Equal(t, "http://traces:4318", readSettings().endpoint)
}

func TestParseRatio(t *testing.T) {
	assert.Equal(t, 0.5, parseRatio("0.5"))
	assert.Equal(t, 1.0, parseRatio(""))
	assert.Equal(t, 1.0, parseRatio("2"))
	assert.Equal(t, 1.0, parseRatio("-0.1"))
}
