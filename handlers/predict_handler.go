package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "relapse_predict/docs" // 导入 swagger 文档
	"relapse_predict/logger"
	"relapse_predict/metrics"
	"relapse_predict/models"
	"relapse_predict/services"
	"relapse_predict/utils"
)

// APIVersion 对外公布的接口版本
const APIVersion = "1.0"

// Handler 持有只读的评估器和指标记录器
type Handler struct {
	assessor     *services.RiskAssessor
	metrics      *metrics.Recorder
	maxBodyBytes int64
}

// NewHandler 创建HTTP处理器，recorder可以为nil
func NewHandler(assessor *services.RiskAssessor, recorder *metrics.Recorder, maxBodyBytes int64) *Handler {
	return &Handler{
		assessor:     assessor,
		metrics:      recorder,
		maxBodyBytes: maxBodyBytes,
	}
}

// PredictHandler godoc
// @Summary 预测复发风险
// @Description 校验9个风险指标，调用模型得到分数并映射为 Stable / At_Risk / Relapsed
// @Tags 预测
// @Accept json
// @Produce json
// @Param body body models.PredictRequest true "风险指标"
// @Success 200 {object} models.PredictResponse "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Failure 500 {object} models.ErrorResponse "模型未加载或推理失败"
// @Router /predict [post]
func (h *Handler) PredictHandler(w http.ResponseWriter, r *http.Request) {
	var (
		result models.RiskAssessment
		aerr   *services.AssessmentError
	)

	if !h.assessor.ModelLoaded() {
		aerr = &services.AssessmentError{Kind: models.KindModelUnavailable}
	} else if body, err := utils.ReadBody(r, h.maxBodyBytes); err != nil {
		if !errors.Is(err, utils.ErrBodyTooLarge) {
			logger.Warn("读取请求体失败", "error", err)
		}
		aerr = &services.AssessmentError{Kind: models.KindMissingBody, Err: err}
	} else {
		result, aerr = h.assessor.AssessBody(body)
	}

	if aerr != nil {
		h.writeAssessmentError(w, aerr)
		return
	}

	h.metrics.ObservePrediction(result)
	logger.Debug("预测完成", "risk_score", result.Score, "risk_category", result.Category)
	utils.WriteSuccessResponse(w, models.NewPredictResponse(result))
}

// writeAssessmentError 将评估错误转换为HTTP响应
func (h *Handler) writeAssessmentError(w http.ResponseWriter, aerr *services.AssessmentError) {
	h.metrics.ObserveError(aerr.Kind)

	status := aerr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("预测失败", "kind", aerr.Kind, "error", aerr.Error())
	} else {
		logger.Warn("预测请求无效", "kind", aerr.Kind, "error", aerr.Error())
	}

	if aerr.Kind != models.KindMissingField {
		utils.WriteErrorResponse(w, status, aerr.Error())
		return
	}

	// 缺少字段时附带完整的必填字段列表
	resp := models.NewErrorResponse(aerr.Error())
	resp.RequiredFields = models.RequiredFields()
	utils.WriteFormattedJSON(w, status, resp)
}

// HealthHandler godoc
// @Summary 健康检查
// @Description 返回服务状态以及模型是否已加载
// @Tags 状态
// @Produce json
// @Success 200 {object} models.HealthResponse "成功"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, models.NewHealthResponse(h.assessor.ModelLoaded()))
}

// HomeHandler godoc
// @Summary 服务信息
// @Description 返回服务名称、版本、接口列表和必填字段
// @Tags 状态
// @Produce json
// @Success 200 {object} models.InfoResponse "成功"
// @Router / [get]
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, models.NewInfoResponse(APIVersion))
}

func RegisterRoutes(r chi.Router, h *Handler) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Get("/", h.HomeHandler)
	r.Get("/health", h.HealthHandler)
	r.Post("/predict", h.PredictHandler)
}
