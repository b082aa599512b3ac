package services

// BuildFeatureVector concatenates the candidate and opportunity
// embeddings with the normalized GPA and skill-overlap count, in that
// fixed order. Pure function; output length is 2D+2 and must match the
// ranker's input dimension.
func BuildFeatureVector(candidate, opportunity []float32, gpaNorm float64, skillOverlap int) []float64 {
	features := make([]float64, 0, len(candidate)+len(opportunity)+2)

	for _, v := range candidate {
		features = append(features, float64(v))
	}
	for _, v := range opportunity {
		features = append(features, float64(v))
	}

	features = append(features, gpaNorm, float64(skillOverlap))
	return features
}
