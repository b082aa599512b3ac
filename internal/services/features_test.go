package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeatureVectorLayout(t *testing.T) {
	candidate := []float32{0.1, 0.2, 0.3}
	opportunity := []float32{0.4, 0.5, 0.6}

	vector := BuildFeatureVector(candidate, opportunity, 0.875, 2)

	require.Len(t, vector, 2*len(candidate)+2)
	assert.InDelta(t, 0.1, vector[0], 1e-6)
	assert.InDelta(t, 0.3, vector[2], 1e-6)
	assert.InDelta(t, 0.4, vector[3], 1e-6)
	assert.InDelta(t, 0.6, vector[5], 1e-6)
	assert.Equal(t, 0.875, vector[6])
	assert.Equal(t, 2.0, vector[7])
}

func TestBuildFeatureVectorDoesNotMutateInputs(t *testing.T) {
	candidate := []float32{1, 2}
	opportunity := []float32{3, 4}

	vector := BuildFeatureVector(candidate, opportunity, 0.5, 1)
	vector[0] = 99
	vector[2] = 99

	assert.Equal(t, []float32{1, 2}, candidate)
	assert.Equal(t, []float32{3, 4}, opportunity)
}

func TestBuildFeatureVectorEmptyEmbeddings(t *testing.T) {
	vector := BuildFeatureVector(nil, nil, 0, 0)

	require.Len(t, vector, 2)
	assert.Equal(t, 0.0, vector[0])
	assert.Equal(t, 0.0, vector[1])
}
