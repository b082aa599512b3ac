package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"internmatch/internship-matcher/internal/models"
)

// ExplanationService produces a short justification for a match score.
// The provider call is bounded by a timeout and every failure path
// lands on a deterministic template, so Explain never fails and never
// blocks scoring.
type ExplanationService interface {
	Explain(ctx context.Context, resume *models.Resume, internship *models.Internship, score int) string
}

type explanationService struct {
	gemini  GeminiService
	timeout time.Duration
}

func NewExplanationService(gemini GeminiService, timeout time.Duration) ExplanationService {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &explanationService{
		gemini:  gemini,
		timeout: timeout,
	}
}

// Explain implements ExplanationService.
func (e *explanationService) Explain(ctx context.Context, resume *models.Resume, internship *models.Internship, score int) string {
	if e.gemini == nil {
		return fallbackExplanation(resume, internship)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := buildExplanationPrompt(resume, internship, score)
	text, err := e.gemini.GenerateText(callCtx, prompt, 0.3)
	if err != nil || strings.TrimSpace(text) == "" {
		return fallbackExplanation(resume, internship)
	}

	return strings.TrimSpace(text)
}

func buildExplanationPrompt(resume *models.Resume, internship *models.Internship, score int) string {
	skills := resume.Skills
	if skills == "" {
		skills = "skills not listed"
	}

	return fmt.Sprintf(`You are an assistant that creates neutral, concise match explanations.

Provide a short (1-2 sentence) explanation why a candidate with skills '%s' matches the internship '%s' at %s with score %d. Mention skills that matched and the internship's focus. Avoid personal demographics.`,
		skills, internship.Title, internship.CompanyName, score)
}

func fallbackExplanation(resume *models.Resume, internship *models.Internship) string {
	skills := resume.Skills
	if skills == "" {
		skills = "skills not listed"
	}

	return fmt.Sprintf("Matches because %s align with the internship's focus (%s at %s).",
		skills, internship.Title, internship.CompanyName)
}
