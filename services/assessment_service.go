package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"relapse_predict/models"
)

// AssessmentError 评估失败，Kind决定HTTP状态码
type AssessmentError struct {
	Kind  models.ErrorKind
	Field string
	Err   error
}

func (e *AssessmentError) Error() string {
	switch e.Kind {
	case models.KindMissingField:
		return "Missing field: " + e.Field
	case models.KindInvalidFieldType:
		return "Invalid value for field: " + e.Field
	case models.KindInternalError:
		if e.Err != nil {
			return e.Err.Error()
		}
	}
	return models.KindMessages[e.Kind]
}

func (e *AssessmentError) Unwrap() error {
	return e.Err
}

// RiskAssessor 校验请求、调用模型并分级；predictor为nil表示模型未加载
type RiskAssessor struct {
	predictor Predictor
}

// NewRiskAssessor 创建评估器，predictor在进程生命周期内只读
func NewRiskAssessor(p Predictor) *RiskAssessor {
	return &RiskAssessor{predictor: p}
}

// ModelLoaded 模型是否可用
func (a *RiskAssessor) ModelLoaded() bool {
	return a != nil && a.predictor != nil
}

// AssessBody 解析原始请求体并评估
func (a *RiskAssessor) AssessBody(body []byte) (models.RiskAssessment, *AssessmentError) {
	if !a.ModelLoaded() {
		return models.RiskAssessment{}, &AssessmentError{Kind: models.KindModelUnavailable}
	}
	payload, ok := decodePayload(body)
	if !ok {
		return models.RiskAssessment{}, &AssessmentError{Kind: models.KindMissingBody}
	}
	return a.Assess(payload)
}

// Assess 按固定顺序校验：模型 -> 请求体 -> 字段存在 -> 字段类型，然后推理
func (a *RiskAssessor) Assess(payload map[string]any) (models.RiskAssessment, *AssessmentError) {
	if !a.ModelLoaded() {
		return models.RiskAssessment{}, &AssessmentError{Kind: models.KindModelUnavailable}
	}
	if len(payload) == 0 {
		return models.RiskAssessment{}, &AssessmentError{Kind: models.KindMissingBody}
	}

	features, aerr := ExtractFeatures(payload)
	if aerr != nil {
		return models.RiskAssessment{}, aerr
	}

	score, aerr := a.predict(features)
	if aerr != nil {
		return models.RiskAssessment{}, aerr
	}

	// 舍入后仍需是有限值，否则响应无法编码
	rounded := RoundScore(score)
	if math.IsInf(rounded, 0) {
		return models.RiskAssessment{}, &AssessmentError{
			Kind: models.KindInternalError,
			Err:  fmt.Errorf("model score %v out of range", score),
		}
	}

	return models.RiskAssessment{
		Score:    rounded,
		Category: models.CategoryFromScore(score),
	}, nil
}

// predict 调用模型，模型panic也转换为内部错误
func (a *RiskAssessor) predict(features []float64) (score float64, aerr *AssessmentError) {
	defer func() {
		if r := recover(); r != nil {
			score = 0
			aerr = &AssessmentError{Kind: models.KindInternalError, Err: fmt.Errorf("model panicked: %v", r)}
		}
	}()

	score, err := a.predictor.Predict(features)
	if err != nil {
		return 0, &AssessmentError{Kind: models.KindInternalError, Err: err}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, &AssessmentError{
			Kind: models.KindInternalError,
			Err:  fmt.Errorf("model returned non-finite score %v", score),
		}
	}
	return score, nil
}

// ExtractFeatures 先检查全部字段是否存在，再逐个转换为float64
func ExtractFeatures(payload map[string]any) ([]float64, *AssessmentError) {
	fields := models.RequiredFields()
	for _, f := range fields {
		if _, ok := payload[f]; !ok {
			return nil, &AssessmentError{Kind: models.KindMissingField, Field: f}
		}
	}

	features := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := ToFloat(payload[f])
		if err != nil {
			return nil, &AssessmentError{Kind: models.KindInvalidFieldType, Field: f, Err: err}
		}
		features = append(features, v)
	}
	return features, nil
}

// ToFloat 接受数字、数字字符串和布尔值，拒绝null、对象、数组和非有限值
func ToFloat(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: %q", x)
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	case nil:
		return 0, fmt.Errorf("value is null")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not finite", f)
	}
	return f, nil
}

// RoundScore 保留4位小数，四舍五入（远离零）
func RoundScore(score float64) float64 {
	return math.Round(score*1e4) / 1e4
}

// decodePayload 只接受非空JSON对象
func decodePayload(body []byte) (map[string]any, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, false
	}
	// 拒绝对象后面还有其他内容
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return payload, len(payload) > 0
}
