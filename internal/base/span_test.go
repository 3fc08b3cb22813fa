package base

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory tracer provider for the duration of the test
func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func spanAttr(span tracetest.SpanStub, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDo_Span(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus codes.Code
	}{
		{"success", http.StatusOK, codes.Unset},
		{"client error", http.StatusUnauthorized, codes.Error},
		{"server error", http.StatusBadGateway, codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := recordSpans(t)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient()
			_, err := client.Do(context.Background(), Request{
				Operation: "get_entry_ids",
				Method:    http.MethodGet,
				URL:       server.URL + "/v3/streams/ids?streamId=feed%2Fa",
			})
			if err != nil {
				t.Fatalf("Do failed: %v", err)
			}

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("spans = %d, want 1", len(spans))
			}
			span := spans[0]

			if span.Name != "feedly.get_entry_ids" {
				t.Errorf("span name = %q", span.Name)
			}
			if span.Status.Code != tt.wantStatus {
				t.Errorf("span status = %v, want %v", span.Status.Code, tt.wantStatus)
			}
			if v, ok := spanAttr(span, "url.path"); !ok || v.AsString() != "/v3/streams/ids" {
				t.Errorf("url.path = %v", v.AsString())
			}
			if v, ok := spanAttr(span, "http.response.status_code"); !ok || int(v.AsInt64()) != tt.status {
				t.Errorf("http.response.status_code = %v", v.AsInt64())
			}
			if v, ok := spanAttr(span, "feedly.operation"); !ok || v.AsString() != "get_entry_ids" {
				t.Errorf("feedly.operation = %v", v.AsString())
			}
		})
	}
}

func TestDo_SpanTransportError(t *testing.T) {
	exporter := recordSpans(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	client := NewClient()
	_, err := client.Do(context.Background(), Request{
		Operation: "get_subscriptions",
		Method:    http.MethodGet,
		URL:       deadURL,
	})
	if err == nil {
		t.Fatal("expected transport error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}
}
