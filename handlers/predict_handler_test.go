package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relapse_predict/metrics"
	"relapse_predict/models"
	"relapse_predict/services"
)

type fixedPredictor struct {
	score float64
	err   error
}

func (p fixedPredictor) Predict([]float64) (float64, error) {
	return p.score, p.err
}

const validBody = `{
	"Academic_Performance_Decline": 0.5,
	"Social_Isolation": 0.5,
	"Financial_Issues": 0.5,
	"Physical_Mental_Health_Problems": 0.5,
	"Legal_Consequences": 0.5,
	"Relationship_Strain": 0.5,
	"Risk_Taking_Behavior": 0.5,
	"Withdrawal_Symptoms": 0.5,
	"Denial_and_Resistance_to_Treatment": 0.5
}`

func newTestRouter(p services.Predictor) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(services.NewRiskAssessor(p), metrics.NewRecorder(), 1<<20))
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestPredictSuccess(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.123456})

	rec, body := do(t, r, http.MethodPost, "/predict", validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.1235, body["risk_score"])
	assert.Equal(t, "Stable", body["risk_category"])
	assert.Equal(t, "success", body["status"])
}

func TestPredictCategories(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.24999, "Stable"},
		{0.25, "At_Risk"},
		{0.54999, "At_Risk"},
		{0.55, "Relapsed"},
	}
	for _, tt := range tests {
		r := newTestRouter(fixedPredictor{score: tt.score})
		rec, body := do(t, r, http.MethodPost, "/predict", validBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tt.want, body["risk_category"], "score %v", tt.score)
	}
}

func TestPredictMissingField(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.3})
	body := strings.Replace(validBody, `"Financial_Issues": 0.5,`, "", 1)

	rec, out := do(t, r, http.MethodPost, "/predict", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing field: Financial_Issues", out["error"])
	assert.Equal(t, "error", out["status"])

	fields, ok := out["required_fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, models.FeatureCount)
	for i, f := range models.RequiredFields() {
		assert.Equal(t, f, fields[i])
	}
}

func TestPredictInvalidFieldType(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.3})
	body := strings.Replace(validBody, `"Social_Isolation": 0.5`, `"Social_Isolation": "often"`, 1)

	rec, out := do(t, r, http.MethodPost, "/predict", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", out["status"])
	assert.Contains(t, out["error"], "Social_Isolation")
	assert.NotContains(t, out, "required_fields")
}

func TestPredictMissingBody(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.3})

	for _, body := range []string{"", "{}", "null", "not json"} {
		rec, out := do(t, r, http.MethodPost, "/predict", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "No data provided", out["error"])
		assert.Equal(t, "error", out["status"])
	}
}

func TestPredictBodyTooLarge(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(services.NewRiskAssessor(fixedPredictor{score: 0.3}), nil, 16))

	rec, out := do(t, r, http.MethodPost, "/predict", validBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data provided", out["error"])
}

func TestPredictModelUnavailable(t *testing.T) {
	r := newTestRouter(nil)

	rec, out := do(t, r, http.MethodPost, "/predict", validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Model not loaded", out["error"])
	assert.Equal(t, "error", out["status"])

	// 服务仍然可用
	rec, out = do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["model_loaded"])
	assert.Equal(t, "healthy", out["status"])
}

func TestPredictInternalError(t *testing.T) {
	r := newTestRouter(fixedPredictor{err: errors.New("inference failed")})

	rec, out := do(t, r, http.MethodPost, "/predict", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "inference failed", out["error"])
	assert.Equal(t, "error", out["status"])
}

func TestPredictIdempotentConcurrent(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.61234})

	var wg sync.WaitGroup
	results := make([]map[string]any, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			var out map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err == nil {
				results[i] = out
			}
		}(i)
	}
	wg.Wait()

	for _, out := range results {
		require.NotNil(t, out)
		assert.Equal(t, results[0], out)
	}
	assert.Equal(t, "Relapsed", results[0]["risk_category"])
	assert.Equal(t, 0.6123, results[0]["risk_score"])
}

func TestHealth(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.1})

	rec, out := do(t, r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"status":       "healthy",
		"model_loaded": true,
		"endpoint":     "/predict",
	}, out)
}

func TestHome(t *testing.T) {
	r := newTestRouter(nil)

	rec, out := do(t, r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Relapse Prediction API", out["message"])
	assert.Equal(t, APIVersion, out["version"])
	assert.Contains(t, out["endpoints"], "POST /predict")
	assert.Len(t, out["required_fields"], models.FeatureCount)
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 0.7})
	do(t, r, http.MethodPost, "/predict", validBody)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `relapse_predictions_total{category="Relapsed"} 1`)
}

func TestSwaggerDoc(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/predict"`)
}

type panickingPredictor struct{}

func (panickingPredictor) Predict([]float64) (float64, error) {
	panic("index out of range")
}

func TestPredictModelPanic(t *testing.T) {
	r := newTestRouter(panickingPredictor{})

	rec, out := do(t, r, http.MethodPost, "/predict", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "error", out["status"])
	assert.Contains(t, out["error"], "index out of range")
	assert.NotContains(t, out, "required_fields")

	// 之后的请求不受影响
	rec, _ = do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPredictScoreTooLargeToRound(t *testing.T) {
	r := newTestRouter(fixedPredictor{score: 1e305})

	rec, out := do(t, r, http.MethodPost, "/predict", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", out["status"])
	assert.NotEmpty(t, out["error"])
}
