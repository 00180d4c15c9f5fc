package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relapse_predict/models"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.ObservePrediction(models.RiskAssessment{Score: 0.1, Category: models.CategoryStable})
	r.ObservePrediction(models.RiskAssessment{Score: 0.6, Category: models.CategoryRelapsed})
	r.ObservePrediction(models.RiskAssessment{Score: 0.7, Category: models.CategoryRelapsed})
	r.ObserveError(models.KindMissingField)
	r.SetModelLoaded(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.predictions.WithLabelValues("Stable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.predictions.WithLabelValues("Relapsed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errors.WithLabelValues("missing_field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.modelLoaded))
}

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObservePrediction(models.RiskAssessment{})
		r.ObserveError(models.KindInternalError)
		r.SetModelLoaded(false)
	})
}

func TestRecorderHandler(t *testing.T) {
	r := NewRecorder()
	r.ObserveError(models.KindModelUnavailable)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `relapse_prediction_errors_total{kind="model_unavailable"} 1`)
}
