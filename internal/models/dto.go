package models

import "time"

type UploadResumeResponse struct {
	ResumeID        string   `json:"resume_id"`
	Filename        string   `json:"filename"`
	OriginalName    string   `json:"original_name"`
	ExtractedSkills []string `json:"extracted_skills"`
	Outcomes        []string `json:"outcomes"`
	GPA             *float64 `json:"gpa,omitempty"`
}

type RecommendationItem struct {
	InternshipID      string     `json:"internship_id"`
	Title             string     `json:"title"`
	CompanyName       string     `json:"company_name"`
	Location          string     `json:"location"`
	PostingURL        string     `json:"posting_url"`
	Score             int        `json:"score"`
	SkillMatchScore   float64    `json:"skill_match_score"`
	OutcomeMatchScore float64    `json:"outcome_match_score"`
	MatchedSkills     []string   `json:"matched_skills"`
	Reason            string     `json:"reason"`
	PostedDate        *time.Time `json:"posted_date,omitempty"`
}

type RecommendResponse struct {
	ResumeID        string               `json:"resume_id"`
	Scorer          string               `json:"scorer"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

type IngestItemResult struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Saved   bool   `json:"saved"`
	Reason  string `json:"reason,omitempty"`
}

type IngestResponse struct {
	Source   string             `json:"source"`
	Count    int                `json:"count"`
	Inserted int                `json:"inserted"`
	Items    []IngestItemResult `json:"items"`
}
