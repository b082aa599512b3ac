package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"internmatch/internship-matcher/internal/models"
	"internmatch/internship-matcher/internal/repositories"
)

// MatcherService ranks a candidate resume against all active postings.
// Scoring of independent pairs fans out across a bounded worker pool;
// the result ordering is deterministic regardless of completion order.
type MatcherService interface {
	RecommendForResume(ctx context.Context, resumeID uuid.UUID) (*models.RecommendResponse, error)
}

type matcherService struct {
	resumeRepo     repositories.ResumeRepository
	internshipRepo repositories.InternshipRepository
	recRepo        repositories.RecommendationRepository
	scorer         Scorer
	explainer      ExplanationService
	concurrency    int
	resultCap      int
}

func NewMatcherService(
	resumeRepo repositories.ResumeRepository,
	internshipRepo repositories.InternshipRepository,
	recRepo repositories.RecommendationRepository,
	scorer Scorer,
	explainer ExplanationService,
	concurrency int,
	resultCap int,
) MatcherService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &matcherService{
		resumeRepo:     resumeRepo,
		internshipRepo: internshipRepo,
		recRepo:        recRepo,
		scorer:         scorer,
		explainer:      explainer,
		concurrency:    concurrency,
		resultCap:      resultCap,
	}
}

type scoredMatch struct {
	internship models.Internship
	breakdown  *ScoreBreakdown
	reason     string
}

// RecommendForResume implements MatcherService.
func (m *matcherService) RecommendForResume(ctx context.Context, resumeID uuid.UUID) (*models.RecommendResponse, error) {
	resume, err := m.resumeRepo.FindByID(resumeID)
	if err != nil {
		return nil, err
	}

	internships, err := m.internshipRepo.FindActive()
	if err != nil {
		return nil, err
	}

	matches, err := m.scoreAll(ctx, resume, internships)
	if err != nil {
		// Cancellation abandons in-flight work; nothing is persisted.
		return nil, err
	}

	// Deterministic ordering: value descending, ties by internship id
	// ascending, independent of scoring completion order.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].breakdown.Value != matches[j].breakdown.Value {
			return matches[i].breakdown.Value > matches[j].breakdown.Value
		}
		return matches[i].internship.ID.String() < matches[j].internship.ID.String()
	})

	// Every scored pair gets a Recommendation row; the result cap
	// bounds only the returned list.
	recs := make([]models.Recommendation, 0, len(matches))
	items := make([]models.RecommendationItem, 0, len(matches))
	for i, match := range matches {
		recs = append(recs, models.Recommendation{
			ID:                uuid.New(),
			ResumeID:          resume.ID,
			InternshipID:      match.internship.ID,
			Score:             match.breakdown.Value,
			SkillMatchScore:   match.breakdown.SkillMatchScore,
			OutcomeMatchScore: match.breakdown.OutcomeMatchScore,
			Scorer:            match.breakdown.Strategy,
			Reason:            match.reason,
		})

		if m.resultCap > 0 && i >= m.resultCap {
			continue
		}

		items = append(items, models.RecommendationItem{
			InternshipID:      match.internship.ID.String(),
			Title:             match.internship.Title,
			CompanyName:       match.internship.CompanyName,
			Location:          match.internship.Location,
			PostingURL:        match.internship.PostingURL,
			Score:             match.breakdown.Value,
			SkillMatchScore:   match.breakdown.SkillMatchScore,
			OutcomeMatchScore: match.breakdown.OutcomeMatchScore,
			MatchedSkills:     match.breakdown.MatchedSkills,
			Reason:            match.reason,
			PostedDate:        match.internship.PostedDate,
		})
	}

	if err := m.recRepo.CreateBatch(recs); err != nil {
		return nil, fmt.Errorf("failed to record recommendations: %w", err)
	}

	return &models.RecommendResponse{
		ResumeID:        resume.ID.String(),
		Scorer:          m.scorer.Strategy(),
		Recommendations: items,
	}, nil
}

// scoreAll fans the independent (resume, internship) scorings out
// across the worker pool and gathers results by index.
func (m *matcherService) scoreAll(ctx context.Context, resume *models.Resume, internships []models.Internship) ([]scoredMatch, error) {
	results := make([]*scoredMatch, len(internships))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < m.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				internship := internships[idx]

				breakdown, err := m.scorer.Score(ctx, resume, &internship)
				if err != nil {
					if errors.Is(err, ErrDimensionMismatch) {
						// Fail this single scoring attempt, not the batch.
						log.Printf("⚠️  Skipping %q: %v\n", internship.Title, err)
						continue
					}
					log.Printf("⚠️  Failed to score %q: %v\n", internship.Title, err)
					continue
				}

				results[idx] = &scoredMatch{
					internship: internship,
					breakdown:  breakdown,
					reason:     m.explainer.Explain(ctx, resume, &internship, breakdown.Value),
				}
			}
		}()
	}

	for idx := range internships {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := make([]scoredMatch, 0, len(results))
	for _, match := range results {
		if match != nil {
			matches = append(matches, *match)
		}
	}
	return matches, nil
}
