package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Score range of the model's bounded output mapping.
const (
	ScoreMin = 300.0
	ScoreMax = 900.0
)

// Layer is one dense layer: Weights[i][j] connects input j to unit i.
type Layer struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// Model is a fixed feed-forward scoring network: dense layers with ReLU
// between them, a sigmoid squash on the single output unit, and an affine
// rescale into [ScoreMin, ScoreMax]. Weights are immutable after
// construction, so Score is safe for concurrent callers.
type Model struct {
	layers []Layer
}

// New validates layer shapes and builds a model. The first layer must accept
// FeatureCount inputs and the last must have exactly one output unit.
func New(layers []Layer) (*Model, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("model has no layers")
	}
	inputs := FeatureCount
	for i, l := range layers {
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Biases) {
			return nil, fmt.Errorf("layer %d: %d weight rows for %d biases", i, len(l.Weights), len(l.Biases))
		}
		for j, row := range l.Weights {
			if len(row) != inputs {
				return nil, fmt.Errorf("layer %d unit %d: %d weights, want %d", i, j, len(row), inputs)
			}
		}
		inputs = len(l.Weights)
	}
	if inputs != 1 {
		return nil, fmt.Errorf("output layer has %d units, want 1", inputs)
	}
	return &Model{layers: layers}, nil
}

// Load reads the weights artifact from a JSON file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights artifact: %w", err)
	}
	var artifact struct {
		Layers []Layer `json:"layers"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("unmarshaling weights artifact: %w", err)
	}
	return New(artifact.Layers)
}

// Score runs the forward pass and returns a value in [ScoreMin, ScoreMax].
func (m *Model) Score(v Vector) float64 {
	x := make([]float64, FeatureCount)
	copy(x, v[:])

	last := len(m.layers) - 1
	for i, l := range m.layers {
		x = forward(l, x)
		if i < last {
			relu(x)
		}
	}

	score := ScoreMin + sigmoid(x[0])*(ScoreMax-ScoreMin)
	return clampScore(score)
}

func forward(l Layer, in []float64) []float64 {
	out := make([]float64, len(l.Weights))
	for i, row := range l.Weights {
		sum := l.Biases[i]
		for j, w := range row {
			sum += w * in[j]
		}
		out[i] = sum
	}
	return out
}

func relu(x []float64) {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func clampScore(s float64) float64 {
	if s < ScoreMin || math.IsNaN(s) {
		return ScoreMin
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}
