package models

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingRecord backs the inline vector storage. One row per owning
// entity and namespace; the vector dimension is fixed per deployment.
type EmbeddingRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EntityID  string    `gorm:"type:text;not null;uniqueIndex:idx_embeddings_entity_ns" json:"entity_id"`
	Namespace string    `gorm:"type:text;not null;uniqueIndex:idx_embeddings_entity_ns" json:"namespace"`
	Vector    []float32 `gorm:"type:jsonb;serializer:json" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (EmbeddingRecord) TableName() string {
	return "embeddings"
}
