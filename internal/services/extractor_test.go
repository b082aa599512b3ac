package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkillsFindsVocabularyTokens(t *testing.T) {
	extractor := NewFeatureExtractor()

	skills := extractor.ExtractSkills("Experienced with Python, SQL and Docker. Also used Git daily.")

	assert.Equal(t, []string{"docker", "git", "python", "sql"}, skills)
}

func TestExtractSkillsMatchesPhrases(t *testing.T) {
	extractor := NewFeatureExtractor()

	skills := extractor.ExtractSkills("Built machine learning pipelines and Node.js services.")

	assert.Contains(t, skills, "machine learning")
	assert.Contains(t, skills, "node.js")
}

func TestExtractSkillsLemmaVariants(t *testing.T) {
	extractor := NewFeatureExtractor()

	skills := extractor.ExtractSkills("Shipped dockers images while reacting to incidents.")

	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "react")
}

func TestExtractSkillsIsCaseInsensitive(t *testing.T) {
	extractor := NewFeatureExtractor()

	upper := extractor.ExtractSkills("PYTHON and JAVASCRIPT")
	lower := extractor.ExtractSkills("python and javascript")

	assert.Equal(t, lower, upper)
}

func TestExtractSkillsEmptyText(t *testing.T) {
	extractor := NewFeatureExtractor()

	assert.Empty(t, extractor.ExtractSkills(""))
}

func TestExtractOutcomesFirstKeywordWinsPerCategory(t *testing.T) {
	extractor := NewFeatureExtractor()

	features := extractor.Extract("Software development and programming internships. Statistics background.")

	// "software" and "programming" both hit the first category but it
	// is recorded once.
	assert.Equal(t, []string{"software development", "data analysis"}, features.Outcomes)
}

func TestExtractGPA(t *testing.T) {
	extractor := NewFeatureExtractor()

	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"colon separated", "GPA: 3.5 Dean's lister", floatPtr(3.5)},
		{"long form", "Grade Point Average 3.8", floatPtr(3.8)},
		{"lowercase", "gpa 2.7", floatPtr(2.7)},
		{"absent", "no academic records here", nil},
		{"unparseable", "GPA: unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := extractor.Extract(tt.text)
			if tt.want == nil {
				assert.Nil(t, features.GPA)
				return
			}
			require.NotNil(t, features.GPA)
			assert.InDelta(t, *tt.want, *features.GPA, 0.001)
		})
	}
}

func TestSkillNormalization(t *testing.T) {
	assert.Equal(t, "python", NormalizeSkill(" Python "))
	assert.Equal(t, []string{"python"}, SplitSkillList(" Python , ,"))
	assert.Equal(t, "python,sql", JoinSkillList([]string{" Python ", "SQL"}))
}

func TestNormalizedSkillSetsAreEqual(t *testing.T) {
	a := SplitSkillList("Python")
	b := SplitSkillList(" python ")

	assert.Equal(t, a, b)
}

func TestCountOutcomeMentions(t *testing.T) {
	outcomes := []string{"data analysis", "networking", "software development"}
	text := "Data analysis internship with networking exposure"

	assert.Equal(t, 2, CountOutcomeMentions(outcomes, text))
	assert.Equal(t, 0, CountOutcomeMentions(nil, text))
}

func floatPtr(f float64) *float64 {
	return &f
}
