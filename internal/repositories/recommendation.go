package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internship-matcher/internal/models"
)

type RecommendationRepository interface {
	CreateBatch(recs []models.Recommendation) error
	FindByResumeID(resumeID uuid.UUID) ([]models.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// CreateBatch implements RecommendationRepository. Rows are append-only;
// every ranking request writes a fresh batch.
func (r *recommendationRepository) CreateBatch(recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	if err := r.db.Create(&recs).Error; err != nil {
		return fmt.Errorf("failed to create recommendations: %w", err)
	}

	return nil
}

// FindByResumeID implements RecommendationRepository.
func (r *recommendationRepository) FindByResumeID(resumeID uuid.UUID) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.db.
		Where("resume_id = ?", resumeID).
		Order("created_at DESC, score DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return recs, nil
}
