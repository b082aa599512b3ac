package services

import (
	"context"
	"fmt"
	"strings"

	"internmatch/internship-matcher/internal/models"
	"internmatch/internship-matcher/internal/repositories"
)

// VectorStore persists embedding vectors for owning entities. The
// backend is selected once at startup from configuration; callers only
// ever see a handle on save and a dense vector on load.
type VectorStore interface {
	Save(ctx context.Context, entityID, namespace string, vector []float32) (string, error)
	Load(ctx context.Context, handle string) ([]float32, error)
}

const (
	NamespaceResume     = "resume"
	NamespaceInternship = "internship"
)

func makeHandle(backend, namespace, entityID string) string {
	return fmt.Sprintf("%s:%s:%s", backend, namespace, entityID)
}

func parseHandle(handle, wantBackend string) (namespace, entityID string, err error) {
	parts := strings.SplitN(handle, ":", 3)
	if len(parts) != 3 || parts[0] != wantBackend {
		return "", "", fmt.Errorf("invalid %s vector handle: %q", wantBackend, handle)
	}
	return parts[1], parts[2], nil
}

// inlineVectorStore keeps vectors in the relational database alongside
// the rest of the entity data.
type inlineVectorStore struct {
	repo repositories.EmbeddingRepository
}

func NewInlineVectorStore(repo repositories.EmbeddingRepository) VectorStore {
	return &inlineVectorStore{repo: repo}
}

// Save implements VectorStore.
func (s *inlineVectorStore) Save(ctx context.Context, entityID, namespace string, vector []float32) (string, error) {
	record := &models.EmbeddingRecord{
		EntityID:  entityID,
		Namespace: namespace,
		Vector:    vector,
	}

	if err := s.repo.Upsert(record); err != nil {
		return "", fmt.Errorf("failed to save inline vector: %w", err)
	}

	return makeHandle("inline", namespace, entityID), nil
}

// Load implements VectorStore.
func (s *inlineVectorStore) Load(ctx context.Context, handle string) ([]float32, error) {
	namespace, entityID, err := parseHandle(handle, "inline")
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByEntity(entityID, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to load inline vector: %w", err)
	}

	return record.Vector, nil
}
