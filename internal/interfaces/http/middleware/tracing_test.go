package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{ServiceName: "sitebuild-test", Enabled: true}), SpanEnricher())
	router.GET("/api/v1/workers/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/boom", func(c *gin.Context) { c.String(http.StatusServiceUnavailable, "down") })
	return router, sr
}

func TestTracing_SpanPerRequest(t *testing.T) {
	router, sr := tracedRouter(t)

	serve(router, "GET", "/api/v1/workers/3", map[string]string{RequestIDHeader: "trace-me"})

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/workers/:id")

	var requestID string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "request_id" {
			requestID = kv.Value.AsString()
		}
	}
	assert.Equal(t, "trace-me", requestID)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_ServerErrorMarksSpan(t *testing.T) {
	router, sr := tracedRouter(t)

	serve(router, "GET", "/boom", nil)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}), SpanEnricher())
	router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
