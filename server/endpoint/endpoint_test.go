package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/observability"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/x", h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))
	return rr
}

func checker(statuses ...observability.HealthStatus) HealthChecker {
	return func(context.Context) []observability.Health {
		out := make([]observability.Health, len(statuses))
		for i, s := range statuses {
			out[i] = observability.Health{Name: string(s), Status: s}
		}
		return out
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantCode   int
		wantStatus string
	}{
		{"no checker", nil, http.StatusOK, "up"},
		{"all up", checker(observability.HealthStatusUp), http.StatusOK, "up"},
		{"degraded", checker(observability.HealthStatusUp, observability.HealthStatusDegraded), http.StatusOK, "degraded"},
		{"down", checker(observability.HealthStatusDegraded, observability.HealthStatusDown), http.StatusServiceUnavailable, "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(Health("traduckxion", tt.checker))
			if rr.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rr.Code, tt.wantCode)
			}
			var body struct {
				Status string `json:"status"`
			}
			_ = json.Unmarshal(rr.Body.Bytes(), &body)
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	if rr := serve(Readiness("svc", checker(observability.HealthStatusDegraded))); rr.Code != http.StatusOK {
		t.Errorf("degraded: code = %d", rr.Code)
	}
	if rr := serve(Readiness("svc", checker(observability.HealthStatusDown))); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("down: code = %d", rr.Code)
	}
}

func TestMetrics(t *testing.T) {
	prom := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# HELP up\n"))
	})
	if rr := serve(Metrics(prom)); rr.Body.String() != "# HELP up\n" {
		t.Errorf("body = %q", rr.Body.String())
	}
	if rr := serve(Metrics(nil)); rr.Code != http.StatusOK || rr.Header().Get("Content-Type") == "" {
		t.Errorf("runtime stats: code = %d", rr.Code)
	}
}

func TestInfo(t *testing.T) {
	rr := serve(Info("traduckxion"))
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["service"] != "traduckxion" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestLiveness(t *testing.T) {
	rr := serve(Liveness("traduckxion"))
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d", rr.Code, http.StatusOK)
	}
	var body struct {
		Status        string `json:"status"`
		Service       string `json:"service"`
		UptimeSeconds *int64 `json:"uptime_seconds"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "alive" || body.Service != "traduckxion" {
		t.Errorf("body = %s", rr.Body.String())
	}
	if body.UptimeSeconds == nil || *body.UptimeSeconds < 0 {
		t.Errorf("missing uptime_seconds: %s", rr.Body.String())
	}
}
