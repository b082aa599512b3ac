package services

import "errors"

var (
	// ErrUnsupportedInputFormat means the uploaded document type cannot
	// be turned into text at all. Callers must not attempt scoring.
	ErrUnsupportedInputFormat = errors.New("unsupported input format")

	// ErrEmbeddingUnavailable means the embedding model or service
	// cannot be reached. Scoring degrades to skill/outcome signals.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrRankerLoadFailure means a ranker artifact is present but
	// malformed. The process falls back to the heuristic strategy.
	ErrRankerLoadFailure = errors.New("ranker load failure")

	// ErrDimensionMismatch means a feature vector disagrees with the
	// ranker's expected input dimension. Only that scoring attempt fails.
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")
)
