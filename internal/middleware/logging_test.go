package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	if rw.statusCode != http.StatusTeapot {
		t.Errorf("status: got %d, want 418", rw.statusCode)
	}

	// Later calls don't overwrite the first status.
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusTeapot {
		t.Errorf("status overwritten: got %d", rw.statusCode)
	}
}

func TestResponseWriterDefaultsOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.Write([]byte("hola"))
	if rw.statusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", rw.statusCode)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Logger(next).ServeHTTP(rec, req)

	if !*called {
		t.Error("next handler should run")
	}
}
