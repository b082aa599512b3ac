package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// skillVocab is the fixed vocabulary tested against resume and posting
// text. All entries are lowercase; multi-word entries are matched as
// contiguous phrases.
var skillVocab = map[string]struct{}{
	"python": {}, "java": {}, "c++": {}, "c#": {}, "javascript": {},
	"react": {}, "vue": {}, "django": {}, "flask": {}, "sql": {},
	"postgresql": {}, "mongodb": {}, "tensorflow": {}, "pytorch": {},
	"keras": {}, "machine learning": {}, "data analysis": {}, "git": {},
	"docker": {}, "html": {}, "css": {}, "node.js": {}, "express": {},
	"linux": {}, "networking": {},
}

// outcomeMap pairs each career category with the keywords that mark
// it. The first keyword hit wins per category; order is fixed so
// extraction is deterministic.
var outcomeMap = []struct {
	Name     string
	Keywords []string
}{
	{"software development", []string{"software", "development", "programming"}},
	{"data analysis", []string{"data analysis", "statistics", "data science"}},
	{"networking", []string{"network", "routing", "switching"}},
}

var (
	gpaPattern        = regexp.MustCompile(`(?i)(?:GPA|Grade Point Average)[:\s]*([0-9]\.?[0-9]?)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Features is the normalized output of text feature extraction.
type Features struct {
	Text     string
	Skills   []string
	Outcomes []string
	GPA      *float64
}

type FeatureExtractor interface {
	Extract(text string) Features
	ExtractSkills(text string) []string
}

type featureExtractor struct{}

func NewFeatureExtractor() FeatureExtractor {
	return &featureExtractor{}
}

// Extract implements FeatureExtractor.
func (f *featureExtractor) Extract(text string) Features {
	normalized := whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")

	return Features{
		Text:     normalized,
		Skills:   f.ExtractSkills(normalized),
		Outcomes: extractOutcomes(normalized),
		GPA:      extractGPA(normalized),
	}
}

// ExtractSkills implements FeatureExtractor. Matching is
// case-insensitive; single tokens are checked with a light lemma
// fallback and multi-word vocabulary entries as contiguous phrases.
func (f *featureExtractor) ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	found := make(map[string]struct{})
	for _, token := range tokenize(lower) {
		if vocabMatch(token) {
			found[normalizeToken(token)] = struct{}{}
		}
	}

	for phrase := range skillVocab {
		if strings.Contains(phrase, " ") && strings.Contains(lower, phrase) {
			found[phrase] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

func extractOutcomes(text string) []string {
	lower := strings.ToLower(text)

	var outcomes []string
	for _, category := range outcomeMap {
		for _, kw := range category.Keywords {
			if strings.Contains(lower, kw) {
				outcomes = append(outcomes, category.Name)
				break
			}
		}
	}
	return outcomes
}

func extractGPA(text string) *float64 {
	m := gpaPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	gpa, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &gpa
}

// CountOutcomeMentions counts how many of the candidate's outcome
// labels occur as substrings of the opportunity text.
func CountOutcomeMentions(outcomes []string, text string) int {
	lower := strings.ToLower(text)

	count := 0
	for _, outcome := range outcomes {
		outcome = NormalizeSkill(outcome)
		if outcome != "" && strings.Contains(lower, outcome) {
			count++
		}
	}
	return count
}

// NormalizeSkill lowercases and trims a skill or outcome label so set
// membership never depends on case or surrounding whitespace.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitSkillList parses a stored comma-separated skill list into a
// normalized slice, dropping empties.
func SplitSkillList(csv string) []string {
	if csv == "" {
		return nil
	}

	var skills []string
	for _, part := range strings.Split(csv, ",") {
		part = NormalizeSkill(part)
		if part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// JoinSkillList renders a normalized skill slice back into the stored
// comma-separated form.
func JoinSkillList(skills []string) string {
	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		s = NormalizeSkill(s)
		if s != "" {
			normalized = append(normalized, s)
		}
	}
	return strings.Join(normalized, ",")
}

func tokenize(text string) []string {
	raw := strings.Fields(text)

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ".,;:!?()[]{}\"'`")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// lemmaSuffixes are stripped one at a time when a raw token misses the
// vocabulary, so "dockers" or "reacting" style variants still hit.
var lemmaSuffixes = []string{"s", "es", "ing"}

func vocabMatch(token string) bool {
	if _, ok := skillVocab[token]; ok {
		return true
	}
	for _, suffix := range lemmaSuffixes {
		if stem := strings.TrimSuffix(token, suffix); stem != token {
			if _, ok := skillVocab[stem]; ok {
				return true
			}
		}
	}
	return false
}

func normalizeToken(token string) string {
	if _, ok := skillVocab[token]; ok {
		return token
	}
	for _, suffix := range lemmaSuffixes {
		if stem := strings.TrimSuffix(token, suffix); stem != token {
			if _, ok := skillVocab[stem]; ok {
				return stem
			}
		}
	}
	return token
}
