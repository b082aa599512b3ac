package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineVectorStoreRoundTrip(t *testing.T) {
	store := NewInlineVectorStore(&memEmbeddingRepo{})

	handle, err := store.Save(context.Background(), "r1", NamespaceResume, []float32{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.Equal(t, "inline:resume:r1", handle)

	vector, err := store.Load(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestInlineVectorStoreUpsertReplaces(t *testing.T) {
	store := NewInlineVectorStore(&memEmbeddingRepo{})
	ctx := context.Background()

	_, err := store.Save(ctx, "i1", NamespaceInternship, []float32{1})
	require.NoError(t, err)
	handle, err := store.Save(ctx, "i1", NamespaceInternship, []float32{2})
	require.NoError(t, err)

	vector, err := store.Load(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, vector)
}

func TestInlineVectorStoreNamespacesAreIsolated(t *testing.T) {
	store := NewInlineVectorStore(&memEmbeddingRepo{})
	ctx := context.Background()

	resumeHandle, err := store.Save(ctx, "same-id", NamespaceResume, []float32{1})
	require.NoError(t, err)
	internshipHandle, err := store.Save(ctx, "same-id", NamespaceInternship, []float32{2})
	require.NoError(t, err)

	fromResume, err := store.Load(ctx, resumeHandle)
	require.NoError(t, err)
	fromInternship, err := store.Load(ctx, internshipHandle)
	require.NoError(t, err)

	assert.Equal(t, []float32{1}, fromResume)
	assert.Equal(t, []float32{2}, fromInternship)
}

func TestInlineVectorStoreRejectsForeignHandle(t *testing.T) {
	store := NewInlineVectorStore(&memEmbeddingRepo{})

	_, err := store.Load(context.Background(), "qdrant:resume:r1")
	assert.Error(t, err)

	_, err = store.Load(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestInlineVectorStoreMissingEntity(t *testing.T) {
	store := NewInlineVectorStore(&memEmbeddingRepo{})

	_, err := store.Load(context.Background(), "inline:resume:unknown")
	assert.Error(t, err)
}

func TestEmbeddingServiceDegradedWithoutModel(t *testing.T) {
	embeddings := NewEmbeddingService(nil, NewInlineVectorStore(&memEmbeddingRepo{}))

	_, err := embeddings.Embed(context.Background(), "text")
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)

	_, err = embeddings.EmbedAndStore(context.Background(), "r1", NamespaceResume, "text")
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
}

func TestEmbeddingServiceLoadEmptyHandle(t *testing.T) {
	embeddings := NewEmbeddingService(nil, NewInlineVectorStore(&memEmbeddingRepo{}))

	_, err := embeddings.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
}

func TestEmbeddingServiceStoresThroughBackend(t *testing.T) {
	gemini := &stubGemini{embedding: []float32{0.5, 0.6}}
	embeddings := NewEmbeddingService(gemini, NewInlineVectorStore(&memEmbeddingRepo{}))
	ctx := context.Background()

	handle, err := embeddings.EmbedAndStore(ctx, "r1", NamespaceResume, "resume text")
	require.NoError(t, err)
	assert.Equal(t, "inline:resume:r1", handle)

	vector, err := embeddings.Load(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, vector)
}
