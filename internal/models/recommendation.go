package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is one scoring event for a (resume, internship) pair.
// Rows are append-only: a new ranking request writes new rows rather
// than updating old ones, so the table is a point-in-time audit trail.
type Recommendation struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID          uuid.UUID `gorm:"type:uuid;not null" json:"resume_id"`
	InternshipID      uuid.UUID `gorm:"type:uuid;not null" json:"internship_id"`
	Score             int       `gorm:"not null" json:"score"`
	SkillMatchScore   float64   `gorm:"not null" json:"skill_match_score"`
	OutcomeMatchScore float64   `gorm:"not null" json:"outcome_match_score"`
	// Scorer records which strategy produced the score ("heuristic"
	// or "ranker"); both emit the same 0-100 scale.
	Scorer    string    `gorm:"type:text;not null" json:"scorer"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Resume     Resume     `gorm:"foreignKey:ResumeID" json:"-"`
	Internship Internship `gorm:"foreignKey:InternshipID" json:"-"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
