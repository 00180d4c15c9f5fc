package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relapse_predict/models"
)

// Recorder 预测服务的Prometheus指标
type Recorder struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	scores      prometheus.Histogram
	modelLoaded prometheus.Gauge
}

// NewRecorder 在独立的registry上注册指标
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relapse_predictions_total",
			Help: "Successful predictions by risk category.",
		}, []string{"category"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relapse_prediction_errors_total",
			Help: "Failed predictions by error kind.",
		}, []string{"kind"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relapse_prediction_score",
			Help:    "Distribution of raw model scores.",
			Buckets: []float64{0.1, 0.25, 0.4, 0.55, 0.7, 0.85, 1},
		}),
		modelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relapse_model_loaded",
			Help: "1 if the prediction model is loaded.",
		}),
	}
	reg.MustRegister(
		r.predictions,
		r.errors,
		r.scores,
		r.modelLoaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObservePrediction 记录一次成功的预测
func (r *Recorder) ObservePrediction(a models.RiskAssessment) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(string(a.Category)).Inc()
	r.scores.Observe(a.Score)
}

// ObserveError 记录一次失败的预测
func (r *Recorder) ObserveError(kind models.ErrorKind) {
	if r == nil {
		return
	}
	r.errors.WithLabelValues(string(kind)).Inc()
}

// SetModelLoaded 更新模型加载状态
func (r *Recorder) SetModelLoaded(loaded bool) {
	if r == nil {
		return
	}
	if loaded {
		r.modelLoaded.Set(1)
	} else {
		r.modelLoaded.Set(0)
	}
}

// Handler 返回 /metrics 处理器
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
