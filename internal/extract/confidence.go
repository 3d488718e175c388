package extract

import "lading/internal/docai"

// ScoreConfidence builds the per-field confidence map from the entities the
// analysis processor scored, plus a synthesized "overall" key holding the
// arithmetic mean of the others. With no scored entities, "overall" is 0.0.
func ScoreConfidence(doc *docai.Document) map[string]float64 {
	scores := map[string]float64{}
	for i := range doc.Entities {
		entity := &doc.Entities[i]
		if entity.Confidence > 0 {
			scores[canonicalKey(entity.Type)] = entity.Confidence
		}
	}

	if len(scores) == 0 {
		scores["overall"] = 0.0
		return scores
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	scores["overall"] = sum / float64(len(scores))
	return scores
}
