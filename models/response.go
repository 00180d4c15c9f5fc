package models

import "net/http"

// ErrorKind 预测请求失败类型
type ErrorKind string

const (
	KindModelUnavailable ErrorKind = "model_unavailable"  // 模型未加载
	KindMissingBody      ErrorKind = "missing_body"       // 请求体为空或无法解析
	KindMissingField     ErrorKind = "missing_field"      // 缺少必填字段
	KindInvalidFieldType ErrorKind = "invalid_field_type" // 字段无法转换为数字
	KindInternalError    ErrorKind = "internal_error"     // 特征提取或推理失败
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusHealthy = "healthy"
)

// 失败类型对应的HTTP状态码
var KindStatus = map[ErrorKind]int{
	KindModelUnavailable: http.StatusInternalServerError,
	KindMissingBody:      http.StatusBadRequest,
	KindMissingField:     http.StatusBadRequest,
	KindInvalidFieldType: http.StatusBadRequest,
	KindInternalError:    http.StatusInternalServerError,
}

// 失败类型对应的默认消息
var KindMessages = map[ErrorKind]string{
	KindModelUnavailable: "Model not loaded",
	KindMissingBody:      "No data provided",
	KindMissingField:     "Missing field",
	KindInvalidFieldType: "Invalid field type",
	KindInternalError:    "Internal server error",
}

// HTTPStatus 返回失败类型的HTTP状态码，未知类型按500处理
func (k ErrorKind) HTTPStatus() int {
	if code, ok := KindStatus[k]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// NewPredictResponse 创建预测成功响应
func NewPredictResponse(a RiskAssessment) PredictResponse {
	return PredictResponse{
		RiskScore:    a.Score,
		RiskCategory: a.Category,
		Status:       StatusSuccess,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Error:  message,
		Status: StatusError,
	}
}

// NewHealthResponse 创建健康检查响应
func NewHealthResponse(modelLoaded bool) HealthResponse {
	return HealthResponse{
		Status:      StatusHealthy,
		ModelLoaded: modelLoaded,
		Endpoint:    "/predict",
	}
}

// NewInfoResponse 创建服务信息响应
func NewInfoResponse(version string) InfoResponse {
	return InfoResponse{
		Message: "Relapse Prediction API",
		Version: version,
		Endpoints: map[string]string{
			"GET /health":   "Check API health",
			"POST /predict": "Make prediction",
			"GET /":         "This info page",
		},
		RequiredFields: RequiredFields(),
	}
}
