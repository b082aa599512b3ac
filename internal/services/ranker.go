package services

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// RankerModel is the learned scoring strategy: a small feed-forward
// network exported offline as a JSON artifact. It is loaded once at
// process start and never mutated, so Predict is safe for any number
// of concurrent callers.
type RankerModel struct {
	InputDim int           `json:"input_dim"`
	Layers   []RankerLayer `json:"layers"`
}

// RankerLayer holds one dense layer. Weights is row-major: one row per
// output unit, each row as long as the layer's input.
type RankerLayer struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// LoadRanker reads and validates a ranker artifact. A missing file is
// a valid absent-model state and returns (nil, nil); a present but
// malformed artifact fails with ErrRankerLoadFailure so the caller can
// fall back to the heuristic strategy.
func LoadRanker(path string) (*RankerModel, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRankerLoadFailure, err)
	}

	var model RankerModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankerLoadFailure, err)
	}

	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankerLoadFailure, err)
	}

	return &model, nil
}

func (m *RankerModel) validate() error {
	if m.InputDim <= 0 {
		return fmt.Errorf("input_dim must be positive, got %d", m.InputDim)
	}
	if len(m.Layers) == 0 {
		return fmt.Errorf("artifact has no layers")
	}

	inputDim := m.InputDim
	for i, layer := range m.Layers {
		if len(layer.Weights) == 0 {
			return fmt.Errorf("layer %d has no weights", i)
		}
		if len(layer.Biases) != len(layer.Weights) {
			return fmt.Errorf("layer %d has %d biases for %d units", i, len(layer.Biases), len(layer.Weights))
		}
		for j, row := range layer.Weights {
			if len(row) != inputDim {
				return fmt.Errorf("layer %d unit %d expects %d inputs, got %d", i, j, inputDim, len(row))
			}
		}
		inputDim = len(layer.Weights)
	}

	if inputDim != 1 {
		return fmt.Errorf("final layer must have a single output, got %d", inputDim)
	}
	return nil
}

// Predict runs the forward pass: ReLU on hidden layers, sigmoid on the
// output, yielding a value in (0, 1). Deterministic for fixed inputs.
func (m *RankerModel) Predict(features []float64) (float64, error) {
	if len(features) != m.InputDim {
		return 0, fmt.Errorf("%w: model expects %d inputs, got %d", ErrDimensionMismatch, m.InputDim, len(features))
	}

	activations := features
	for i, layer := range m.Layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			sum := layer.Biases[j]
			for k, w := range row {
				sum += w * activations[k]
			}
			next[j] = sum
		}

		if i < len(m.Layers)-1 {
			for j := range next {
				if next[j] < 0 {
					next[j] = 0
				}
			}
		}
		activations = next
	}

	return sigmoid(activations[0]), nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
