package middleware

import (
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aqtareen/Taqreeb/internal/api"

// Tracing opens a server span for each request. An incoming traceparent
// header is honoured. After routing the span takes the matched pattern as
// its name, so "/api/events/7" and "/api/events/9" share "GET /api/events/{id}".
func Tracing(next http.Handler) http.Handler {
	tracer := telemetry.Tracer(tracerName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(parent, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(requestAttributes(r)...),
		)
		defer span.End()

		if id := GetRequestID(ctx); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}

		rec := &responseWriter{ResponseWriter: w}
		routed := r.WithContext(ctx)
		next.ServeHTTP(rec, routed)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		if routed.Pattern != "" {
			span.SetName(routed.Pattern)
			span.SetAttributes(semconv.HTTPRoute(routed.Pattern))
		}
		span.SetAttributes(
			semconv.HTTPStatusCode(status),
			attribute.Int("http.response_size", rec.bytes),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

func requestAttributes(r *http.Request) []attribute.KeyValue {
	scheme := "http"
	switch {
	case r.TLS != nil:
		scheme = "https"
	case r.Header.Get("X-Forwarded-Proto") != "":
		scheme = r.Header.Get("X-Forwarded-Proto")
	}

	return []attribute.KeyValue{
		semconv.HTTPMethod(r.Method),
		semconv.HTTPScheme(scheme),
		attribute.String("http.target", r.URL.RequestURI()),
		semconv.NetHostName(r.Host),
		attribute.String("http.user_agent", r.UserAgent()),
	}
}
