package models

// 风险指标字段，顺序即模型训练时的特征顺序
const (
	FieldAcademicPerformanceDecline     = "Academic_Performance_Decline"
	FieldSocialIsolation                = "Social_Isolation"
	FieldFinancialIssues                = "Financial_Issues"
	FieldPhysicalMentalHealthProblems   = "Physical_Mental_Health_Problems"
	FieldLegalConsequences              = "Legal_Consequences"
	FieldRelationshipStrain             = "Relationship_Strain"
	FieldRiskTakingBehavior             = "Risk_Taking_Behavior"
	FieldWithdrawalSymptoms             = "Withdrawal_Symptoms"
	FieldDenialAndResistanceToTreatment = "Denial_and_Resistance_to_Treatment"
)

// FeatureCount 模型输入向量长度
const FeatureCount = 9

var requiredFields = [FeatureCount]string{
	FieldAcademicPerformanceDecline,
	FieldSocialIsolation,
	FieldFinancialIssues,
	FieldPhysicalMentalHealthProblems,
	FieldLegalConsequences,
	FieldRelationshipStrain,
	FieldRiskTakingBehavior,
	FieldWithdrawalSymptoms,
	FieldDenialAndResistanceToTreatment,
}

// RequiredFields 返回必填字段列表的副本（固定顺序）
func RequiredFields() []string {
	out := make([]string, FeatureCount)
	copy(out, requiredFields[:])
	return out
}

// RiskCategory 复发风险等级
type RiskCategory string

const (
	CategoryStable   RiskCategory = "Stable"
	CategoryAtRisk   RiskCategory = "At_Risk"
	CategoryRelapsed RiskCategory = "Relapsed"
)

// 分级阈值
const (
	AtRiskThreshold   = 0.25
	RelapsedThreshold = 0.55
)

// CategoryFromScore 根据未舍入的分数确定风险等级
func CategoryFromScore(score float64) RiskCategory {
	switch {
	case score >= RelapsedThreshold:
		return CategoryRelapsed
	case score >= AtRiskThreshold:
		return CategoryAtRisk
	default:
		return CategoryStable
	}
}

// RiskAssessment 单次评估结果，每个请求新建，不持久化
type RiskAssessment struct {
	Score    float64      `json:"risk_score"`
	Category RiskCategory `json:"risk_category"`
}
