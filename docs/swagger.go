package docs

// @title 复发风险预测 API
// @version 1.0
// @description 基于预训练回归模型的复发风险评分服务
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:10000
// @BasePath /
// @schemes http https
