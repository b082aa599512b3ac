package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"internmatch/internship-matcher/internal/models"
)

type EmbeddingRepository interface {
	Upsert(record *models.EmbeddingRecord) error
	FindByEntity(entityID, namespace string) (*models.EmbeddingRecord, error)
}

type embeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) EmbeddingRepository {
	return &embeddingRepository{db: db}
}

// Upsert implements EmbeddingRepository.
func (r *embeddingRepository) Upsert(record *models.EmbeddingRecord) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}, {Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"vector"}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert embedding: %w", err)
	}

	return nil
}

// FindByEntity implements EmbeddingRepository.
func (r *embeddingRepository) FindByEntity(entityID, namespace string) (*models.EmbeddingRecord, error) {
	var record models.EmbeddingRecord
	err := r.db.
		Where("entity_id = ? AND namespace = ?", entityID, namespace).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("embedding not found: %w", ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find embedding: %w", err)
	}

	return &record, nil
}
