package models

// PredictRequest 预测请求体（swagger展示用，实际按JSON对象逐字段校验）
type PredictRequest struct {
	AcademicPerformanceDecline     float64 `json:"Academic_Performance_Decline" example:"0.5"`
	SocialIsolation                float64 `json:"Social_Isolation" example:"0.25"`
	FinancialIssues                float64 `json:"Financial_Issues" example:"0"`
	PhysicalMentalHealthProblems   float64 `json:"Physical_Mental_Health_Problems" example:"0.75"`
	LegalConsequences              float64 `json:"Legal_Consequences" example:"0"`
	RelationshipStrain             float64 `json:"Relationship_Strain" example:"0.5"`
	RiskTakingBehavior             float64 `json:"Risk_Taking_Behavior" example:"0.25"`
	WithdrawalSymptoms             float64 `json:"Withdrawal_Symptoms" example:"1"`
	DenialAndResistanceToTreatment float64 `json:"Denial_and_Resistance_to_Treatment" example:"0.5"`
}

// PredictResponse 预测成功响应
type PredictResponse struct {
	RiskScore    float64      `json:"risk_score" example:"0.4213"`
	RiskCategory RiskCategory `json:"risk_category" example:"At_Risk"`
	Status       string       `json:"status" example:"success"`
}

// ErrorResponse 通用错误响应
type ErrorResponse struct {
	Error          string   `json:"error" example:"Missing field: Social_Isolation"`
	RequiredFields []string `json:"required_fields,omitempty"`
	Status         string   `json:"status" example:"error"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	ModelLoaded bool   `json:"model_loaded" example:"true"`
	Endpoint    string `json:"endpoint" example:"/predict"`
}

// InfoResponse 服务信息响应
type InfoResponse struct {
	Message        string            `json:"message" example:"Relapse Prediction API"`
	Version        string            `json:"version" example:"1.0"`
	Endpoints      map[string]string `json:"endpoints"`
	RequiredFields []string          `json:"required_fields"`
}
