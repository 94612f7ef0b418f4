package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const upstreamFixture = `{
	"prediction": 0,
	"prediction_label": "No (Likely to Stay)",
	"probability": {"stay": 0.65, "leave": 0.35},
	"confidence": 0.65,
	"feature_importance": {"Overtime": 30, "Department": 10, "Job_Security": 30}
}`

const fullRequest = `{
	"Department": "Engineering",
	"Overtime": "1-10 hours",
	"Promotion_Gap": 2.5,
	"Job_Satisfaction": "Neutral",
	"AI_Automation_Risk": "Medium",
	"Recent_Layoffs": "No",
	"Job_Security": "Secure",
	"Market_Demand": "Easy"
}`

func newTestRouter(t *testing.T, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server, err := NewServer(Config{UpstreamURL: upstreamURL, DisableAI: true})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	// Template explainer keeps narratives available without credentials.
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return router
}

func TestHandleFeatures(t *testing.T) {
	router := newTestRouter(t, "http://localhost:1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/features", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp FeaturesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Features) != 8 || len(resp.Order) != 8 {
		t.Fatalf("expected 8 features, got %d (%d ordered)", len(resp.Features), len(resp.Order))
	}
	overtime, ok := resp.Features["Overtime"]
	if !ok {
		t.Fatal("Overtime missing")
	}
	if overtime.Type != "categorical" || len(overtime.Options) != 4 {
		t.Fatalf("unexpected Overtime metadata: %+v", overtime)
	}
	gap := resp.Features["Promotion_Gap"]
	if gap.Type != "numeric" || gap.Min == nil || gap.Max == nil || *gap.Max != 50 {
		t.Fatalf("unexpected Promotion_Gap metadata: %+v", gap)
	}
}

func TestHandlePredictMissingFields(t *testing.T) {
	router := newTestRouter(t, "http://localhost:1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"Department": "Engineering"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp["error"], "missing required fields") {
		t.Fatalf("unexpected error %q", resp["error"])
	}
	if !strings.Contains(resp["error"], "Overtime") {
		t.Fatalf("missing field not named: %q", resp["error"])
	}
}

func TestHandlePredictEnrichment(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode upstream request: %v", err)
		}
		if payload["Promotion_Gap"] != 2.5 {
			t.Fatalf("numeric field lost coercion: %v", payload["Promotion_Gap"])
		}
		if payload["Department"] != "Engineering" {
			t.Fatalf("categorical field altered: %v", payload["Department"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstreamFixture))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(fullRequest))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	var dto PredictionDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Risk.Label != "Low Risk" {
		t.Fatalf("expected Low Risk got %s", dto.Risk.Label)
	}
	if dto.LeavePercent != 35 || dto.StayPercent != 65 {
		t.Fatalf("unexpected gauges: leave=%d stay=%d", dto.LeavePercent, dto.StayPercent)
	}
	if len(dto.Importances) != 3 {
		t.Fatalf("expected 3 ranked importances got %d", len(dto.Importances))
	}
	// Overtime and Job_Security tie at the max; Overtime came first upstream.
	if dto.Importances[0].Name != "Overtime" || dto.Importances[1].Name != "Job_Security" {
		t.Fatalf("unexpected ranking: %s, %s", dto.Importances[0].Name, dto.Importances[1].Name)
	}
	if dto.Explanation == "" {
		t.Fatal("template explanation missing")
	}
	if !strings.Contains(dto.Explanation, "Low Risk") {
		t.Fatalf("explanation does not mention the tier: %q", dto.Explanation)
	}
}

func TestHandlePredictUpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := dead.URL
	dead.Close()

	router := newTestRouter(t, endpoint)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(fullRequest))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp["error"], "cannot connect to backend at "+endpoint) {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestHandlePredictUpstreamErrorPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Model not loaded. Please check server logs."}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(fullRequest))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Model not loaded") {
		t.Fatalf("server text not surfaced: %s", w.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "healthy", "model_loaded": true}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || !resp.Upstream.Reachable || !resp.Upstream.ModelLoaded {
		t.Fatalf("unexpected health: %+v", resp)
	}
}
