package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// qdrantVectorStore keeps vectors out-of-line in a Qdrant collection;
// entity rows only carry the handle.
type qdrantVectorStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantVectorStore(urlStr, apiKey, collectionName string, vectorSize uint64) (VectorStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	store := &qdrantVectorStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
	}

	if err := store.initCollection(); err != nil {
		return nil, err
	}

	return store, nil
}

func (q *qdrantVectorStore) initCollection() error {
	ctx := context.Background()

	// Check if collection exists
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Qdrant collection already exists")
		return nil
	}

	// Create collection
	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// pointID derives a stable Qdrant point id from the owning entity, so
// re-saving the same entity upserts rather than duplicates.
func (q *qdrantVectorStore) pointID(namespace, entityID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(namespace+"/"+entityID))
}

// Save implements VectorStore.
func (q *qdrantVectorStore) Save(ctx context.Context, entityID, namespace string, vector []float32) (string, error) {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(q.pointID(namespace, entityID).String()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"entity_id": entityID,
			"namespace": namespace,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert vector: %w", err)
	}

	return makeHandle("qdrant", namespace, entityID), nil
}

// Load implements VectorStore.
func (q *qdrantVectorStore) Load(ctx context.Context, handle string) ([]float32, error) {
	namespace, entityID, err := parseHandle(handle, "qdrant")
	if err != nil {
		return nil, err
	}

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(q.pointID(namespace, entityID).String())},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get vector: %w", err)
	}

	if len(points) == 0 || points[0].Vectors == nil {
		return nil, fmt.Errorf("vector not found for handle %q", handle)
	}

	vectorOutput := points[0].Vectors.GetVector()
	if vectorOutput == nil {
		return nil, fmt.Errorf("unexpected vector layout for handle %q", handle)
	}

	return vectorOutput.GetData(), nil
}
