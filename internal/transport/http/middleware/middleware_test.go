package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dragondrop/internal/platform/metrics"
)

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Fatal("expected request id in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRequestIDHonorsInbound(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetRequestID(r.Context()); got != "client-id" {
			t.Fatalf("expected inbound id preserved, got %q", got)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != "client-id" {
		t.Fatal("expected inbound id echoed")
	}
}

func TestRecovererConvertsPanic(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestMetricsRecordsRequests(t *testing.T) {
	collector := metrics.New()
	handler := Metrics(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	snap := collector.Snapshot()
	if snap["requestsTotal"].(uint64) != 1 || snap["errorsTotal"].(uint64) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	collector.RecordDigest(true)
	collector.Record(http.StatusOK, 10*time.Millisecond)
	snap = collector.Snapshot()
	if snap["digestsSent"].(uint64) != 1 || snap["requestsTotal"].(uint64) != 2 {
		t.Fatalf("unexpected snapshot after digest: %+v", snap)
	}
}
