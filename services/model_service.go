package services

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"relapse_predict/models"
)

// Predictor 模型推理接口，实现必须可重入，加载后只读
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// 模型类型
const (
	ModelTypeLinear  = "linear"
	ModelTypeForest  = "forest"
	ModelTypeBoosted = "boosted"
)

var ErrFeatureCount = errors.New("unexpected feature count")

// ModelArtifact 序列化的模型文件结构（JSON或YAML）
type ModelArtifact struct {
	Type         string   `yaml:"type" json:"type"`
	Version      string   `yaml:"version" json:"version"`
	NFeatures    int      `yaml:"n_features" json:"n_features"`
	FeatureNames []string `yaml:"feature_names" json:"feature_names"`

	// linear
	Intercept    float64   `yaml:"intercept" json:"intercept"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`

	// forest / boosted
	Trees        []Tree  `yaml:"trees" json:"trees"`
	BaseScore    float64 `yaml:"base_score" json:"base_score"`
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
}

// Tree 扁平存储的回归树，下标0为根节点
type Tree struct {
	Nodes []TreeNode `yaml:"nodes" json:"nodes"`
}

// TreeNode 树节点，Left为-1表示叶子
type TreeNode struct {
	Feature   int     `yaml:"feature" json:"feature"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Left      int     `yaml:"left" json:"left"`
	Right     int     `yaml:"right" json:"right"`
	Value     float64 `yaml:"value" json:"value"`
}

// LoadedModel 加载完成的模型及其描述信息
type LoadedModel struct {
	Predictor
	Type    string
	Version string
}

// LoadModel 从本地文件读取并校验模型
func LoadModel(path string) (*LoadedModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return ParseModel(data)
}

// ParseModel 解析模型内容，YAML解析器同样可以读取JSON
func ParseModel(data []byte) (*LoadedModel, error) {
	var a ModelArtifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	p, err := a.Build()
	if err != nil {
		return nil, err
	}
	return &LoadedModel{Predictor: p, Type: a.Type, Version: a.Version}, nil
}

// Build 校验模型文件并构建对应的Predictor
func (a *ModelArtifact) Build() (Predictor, error) {
	if a.NFeatures != models.FeatureCount {
		return nil, fmt.Errorf("model expects %d features, service provides %d", a.NFeatures, models.FeatureCount)
	}
	if len(a.FeatureNames) > 0 && !slices.Equal(a.FeatureNames, models.RequiredFields()) {
		return nil, fmt.Errorf("model feature order %v does not match %v", a.FeatureNames, models.RequiredFields())
	}

	switch a.Type {
	case ModelTypeLinear:
		if len(a.Coefficients) != a.NFeatures {
			return nil, fmt.Errorf("linear model has %d coefficients, want %d", len(a.Coefficients), a.NFeatures)
		}
		return &LinearModel{
			intercept:    a.Intercept,
			coefficients: slices.Clone(a.Coefficients),
		}, nil
	case ModelTypeForest, ModelTypeBoosted:
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("%s model has no trees", a.Type)
		}
		trees := make([]Tree, len(a.Trees))
		for i, t := range a.Trees {
			if err := t.validate(a.NFeatures); err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			trees[i] = Tree{Nodes: slices.Clone(t.Nodes)}
		}
		if a.Type == ModelTypeForest {
			return &ForestModel{trees: trees}, nil
		}
		return &BoostedModel{trees: trees, baseScore: a.BaseScore, learningRate: a.LearningRate}, nil
	case "":
		return nil, errors.New("model type is empty")
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.Type)
	}
}

// LinearModel 线性回归：intercept + Σ coef·x
type LinearModel struct {
	intercept    float64
	coefficients []float64
}

func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(m.coefficients))
	}
	score := m.intercept
	for i, x := range features {
		score += m.coefficients[i] * x
	}
	return score, nil
}

// ForestModel 随机森林回归，取所有树的平均值
type ForestModel struct {
	trees []Tree
}

func (m *ForestModel) Predict(features []float64) (float64, error) {
	if len(features) != models.FeatureCount {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), models.FeatureCount)
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.eval(features)
	}
	return sum / float64(len(m.trees)), nil
}

// BoostedModel 梯度提升回归：base_score + learning_rate · Σ tree
type BoostedModel struct {
	trees        []Tree
	baseScore    float64
	learningRate float64
}

func (m *BoostedModel) Predict(features []float64) (float64, error) {
	if len(features) != models.FeatureCount {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), models.FeatureCount)
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.eval(features)
	}
	return m.baseScore + m.learningRate*sum, nil
}

func (t Tree) eval(features []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left == -1 {
			return n.Value
		}
		if features[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// validate 子节点下标必须大于父节点，保证遍历一定终止
func (t Tree) validate(nFeatures int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Left == -1 {
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		for _, c := range []int{n.Left, n.Right} {
			if c <= i || c >= len(t.Nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, c)
			}
		}
	}
	return nil
}
