package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internship-matcher/internal/models"
)

type InternshipRepository interface {
	// InsertIfNew stores the posting unless one with the same
	// (title, company) pair already exists. Re-ingesting a duplicate
	// is a no-op reported through the bool, not an error.
	InsertIfNew(internship *models.Internship) (bool, error)
	ExistsByTitleCompany(title, company string) (bool, error)
	FindByID(id uuid.UUID) (*models.Internship, error)
	FindActive() ([]models.Internship, error)
	UpdateEmbeddingRef(id uuid.UUID, ref string) error
}

type internshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

// InsertIfNew implements InternshipRepository.
func (r *internshipRepository) InsertIfNew(internship *models.Internship) (bool, error) {
	exists, err := r.ExistsByTitleCompany(internship.Title, internship.CompanyName)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := r.db.Create(internship).Error; err != nil {
		return false, fmt.Errorf("failed to create internship: %w", err)
	}

	return true, nil
}

// ExistsByTitleCompany implements InternshipRepository.
func (r *internshipRepository) ExistsByTitleCompany(title, company string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Internship{}).
		Where("title = ? AND company_name = ?", title, company).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate internship: %w", err)
	}

	return count > 0, nil
}

// FindByID implements InternshipRepository.
func (r *internshipRepository) FindByID(id uuid.UUID) (*models.Internship, error) {
	var internship models.Internship
	if err := r.db.Where("id = ?", id).First(&internship).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("internship not found: %w", ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find internship: %w", err)
	}

	return &internship, nil
}

// FindActive implements InternshipRepository.
func (r *internshipRepository) FindActive() ([]models.Internship, error) {
	var internships []models.Internship
	if err := r.db.Where("is_active = ?", true).Find(&internships).Error; err != nil {
		return nil, fmt.Errorf("failed to find active internships: %w", err)
	}

	return internships, nil
}

// UpdateEmbeddingRef implements InternshipRepository.
func (r *internshipRepository) UpdateEmbeddingRef(id uuid.UUID, ref string) error {
	result := r.db.Model(&models.Internship{}).
		Where("id = ?", id).
		Update("embedding_ref", ref)

	if result.Error != nil {
		return fmt.Errorf("failed to update embedding ref: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("internship not found")
	}

	return nil
}
