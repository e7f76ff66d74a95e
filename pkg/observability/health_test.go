package observability

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHealthChecker_Liveness(t *testing.T) {
	checker := NewHealthChecker(nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()

	checker.Liveness(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Liveness check returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var status HealthStatus
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if status.Status != StatusHealthy {
		t.Errorf("Expected status %q, got %q", StatusHealthy, status.Status)
	}
}

func TestHealthChecker_Readiness(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("Failed to create mock db: %v", err)
		}
		defer db.Close()
		mock.ExpectPing()

		checker := NewHealthChecker(db)
		req := httptest.NewRequest("GET", "/readyz", nil)
		rr := httptest.NewRecorder()

		checker.Readiness(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200, got %v", rr.Code)
		}

		var status HealthStatus
		if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if status.Dependencies["database"].Status != StatusHealthy {
			t.Errorf("Expected healthy database, got %+v", status.Dependencies["database"])
		}
	})

	t.Run("unreachable database", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("Failed to create mock db: %v", err)
		}
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		checker := NewHealthChecker(db)
		req := httptest.NewRequest("GET", "/readyz", nil)
		rr := httptest.NewRecorder()

		checker.Readiness(rr, req)

		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %v", rr.Code)
		}

		var status HealthStatus
		if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if status.Status != StatusUnhealthy {
			t.Errorf("Expected status %q, got %q", StatusUnhealthy, status.Status)
		}
	})

	t.Run("no database configured", func(t *testing.T) {
		checker := NewHealthChecker(nil)
		req := httptest.NewRequest("GET", "/readyz", nil)
		rr := httptest.NewRecorder()

		checker.Readiness(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200, got %v", rr.Code)
		}
	})
}
