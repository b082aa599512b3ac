package services

import (
	"context"
	"fmt"
)

// EmbeddingService maps text to fixed-dimension dense vectors and
// persists them through the configured VectorStore. Embedding is
// deterministic for identical text and model version; the underlying
// client is shared, read-only state safe for concurrent callers.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedAndStore(ctx context.Context, entityID, namespace, text string) (string, error)
	Load(ctx context.Context, handle string) ([]float32, error)
}

type embeddingService struct {
	gemini  GeminiService
	store   VectorStore
	chunker TextChunker
}

// NewEmbeddingService wires the embedding model to the vector store.
// A nil gemini service is a valid degraded state (no API key); Embed
// then reports ErrEmbeddingUnavailable and callers fall back to
// skill/outcome signals.
func NewEmbeddingService(gemini GeminiService, store VectorStore) EmbeddingService {
	return &embeddingService{
		gemini:  gemini,
		store:   store,
		chunker: NewTextChunker(),
	}
}

// Embed implements EmbeddingService.
func (e *embeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.gemini == nil {
		return nil, fmt.Errorf("%w: no embedding model configured", ErrEmbeddingUnavailable)
	}

	// Long documents are chunked and the leading chunk embedded, which
	// keeps the input inside the model's context without mid-word cuts.
	if len(text) > 8000 {
		chunks := e.chunker.ChunkText(text, 8000, 200)
		if len(chunks) > 0 {
			text = chunks[0]
		}
	}

	return e.gemini.GenerateEmbedding(ctx, text)
}

// EmbedAndStore implements EmbeddingService.
func (e *embeddingService) EmbedAndStore(ctx context.Context, entityID, namespace, text string) (string, error) {
	vector, err := e.Embed(ctx, text)
	if err != nil {
		return "", err
	}

	handle, err := e.store.Save(ctx, entityID, namespace, vector)
	if err != nil {
		return "", fmt.Errorf("failed to persist embedding: %w", err)
	}

	return handle, nil
}

// Load implements EmbeddingService.
func (e *embeddingService) Load(ctx context.Context, handle string) ([]float32, error) {
	if handle == "" {
		return nil, fmt.Errorf("%w: entity has no stored embedding", ErrEmbeddingUnavailable)
	}

	return e.store.Load(ctx, handle)
}
