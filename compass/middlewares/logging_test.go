package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"compass/compass/utils/logging"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := logging.RequestLogger
	logging.RequestLogger = zap.New(core)
	defer func() { logging.RequestLogger = prev }()

	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", fields["status"])
	}
	if fields["path"] != "/health" || fields["method"] != "GET" {
		t.Errorf("unexpected fields %v", fields)
	}
	if fields["bytes"] != int64(len("short and stout")) {
		t.Errorf("unexpected byte count %v", fields["bytes"])
	}
}
