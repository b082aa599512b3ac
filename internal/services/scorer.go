package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"internmatch/internship-matcher/internal/models"
)

const (
	StrategyHeuristic = "heuristic"
	StrategyRanker    = "ranker"

	// Baseline skill score for postings that list no required skills.
	emptyRequiredSkillScore = 40.0

	outcomeBoostCap = 30
)

// ScoreBreakdown is the full result of scoring one (resume,
// internship) pair. The skill and outcome sub-scores are reported for
// every strategy so results stay explainable and auditable.
type ScoreBreakdown struct {
	Value             int
	SkillMatchScore   float64
	OutcomeMatchScore float64
	MatchedSkills     []string
	Strategy          string
}

type Scorer interface {
	Score(ctx context.Context, resume *models.Resume, internship *models.Internship) (*ScoreBreakdown, error)
	Strategy() string
}

type scorer struct {
	ranker     *RankerModel
	embeddings EmbeddingService
	maxScore   int
}

// NewScorer selects the scoring strategy once at startup: the learned
// ranker when an artifact is loaded, the deterministic heuristic
// otherwise.
func NewScorer(ranker *RankerModel, embeddings EmbeddingService, maxScore int) Scorer {
	if maxScore <= 0 {
		maxScore = 100
	}
	return &scorer{
		ranker:     ranker,
		embeddings: embeddings,
		maxScore:   maxScore,
	}
}

// Strategy implements Scorer.
func (s *scorer) Strategy() string {
	if s.ranker != nil {
		return StrategyRanker
	}
	return StrategyHeuristic
}

// Score implements Scorer. Deterministic for fixed inputs and a fixed
// model artifact.
func (s *scorer) Score(ctx context.Context, resume *models.Resume, internship *models.Internship) (*ScoreBreakdown, error) {
	resumeSkills := toSet(SplitSkillList(resume.Skills))
	requiredSkills := SplitSkillList(internship.RequiredSkills)
	outcomes := SplitSkillList(resume.Outcomes)

	var matched []string
	for _, skill := range requiredSkills {
		if _, ok := resumeSkills[skill]; ok {
			matched = append(matched, skill)
		}
	}

	skillScore := emptyRequiredSkillScore
	if len(requiredSkills) > 0 {
		skillScore = math.Round(100 * float64(len(matched)) / float64(len(requiredSkills)))
	}

	opportunityText := internship.Title + " " + internship.Description
	outcomeMatches := CountOutcomeMentions(outcomes, opportunityText)
	if outcomeMatches > 3 {
		outcomeMatches = 3
	}
	outcomeBoost := 10 * outcomeMatches

	breakdown := &ScoreBreakdown{
		SkillMatchScore:   skillScore,
		OutcomeMatchScore: math.Round(100 * float64(outcomeBoost) / outcomeBoostCap),
		MatchedSkills:     capSkills(matched, 5),
		Strategy:          StrategyHeuristic,
	}

	if s.ranker != nil {
		value, err := s.rankerValue(ctx, resume, internship, len(matched))
		if err == nil {
			breakdown.Value = s.clamp(value)
			breakdown.Strategy = StrategyRanker
			return breakdown, nil
		}
		if errors.Is(err, ErrDimensionMismatch) {
			return nil, err
		}
		// Embeddings unreachable or missing: the semantic term is
		// neutral and the skill/outcome signals carry the score.
		log.Printf("⚠️  Ranker scoring degraded to heuristic: %v\n", err)
	}

	breakdown.Value = s.clamp(int(math.Round(0.8*skillScore)) + outcomeBoost)
	return breakdown, nil
}

// rankerValue runs the learned strategy for one pair. Its sigmoid
// output is mapped onto the same 0-100 scale the heuristic emits.
func (s *scorer) rankerValue(ctx context.Context, resume *models.Resume, internship *models.Internship, overlap int) (int, error) {
	resumeEmb, err := s.embeddings.Load(ctx, resume.EmbeddingRef)
	if err != nil {
		return 0, fmt.Errorf("resume embedding: %w", err)
	}

	internshipEmb, err := s.embeddings.Load(ctx, internship.EmbeddingRef)
	if err != nil {
		return 0, fmt.Errorf("internship embedding: %w", err)
	}

	gpaNorm := 0.0
	if resume.GPA != nil {
		gpaNorm = *resume.GPA / 4.0
		if gpaNorm < 0 {
			gpaNorm = 0
		}
		if gpaNorm > 1 {
			gpaNorm = 1
		}
	}

	features := BuildFeatureVector(resumeEmb, internshipEmb, gpaNorm, overlap)
	activation, err := s.ranker.Predict(features)
	if err != nil {
		return 0, err
	}

	return int(math.Round(activation * 100)), nil
}

func (s *scorer) clamp(value int) int {
	if value < 0 {
		return 0
	}
	if value > s.maxScore {
		return s.maxScore
	}
	return value
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func capSkills(skills []string, n int) []string {
	if len(skills) <= n {
		return skills
	}
	return skills[:n]
}
