package detect

import (
	"strings"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/normalize"
)

// LeadSourceResult is the deterministic lead-source signal for a transcript.
// LeadSource is empty when nothing matched.
type LeadSourceResult struct {
	LeadSource string  `json:"leadSource"`
	Confidence float64 `json:"confidence"`
}

// DetectLeadSource tests each lead source's phrases against the normalized
// transcript. Lead source is a scalar field, so table order is match
// priority: the first source with any matching phrase wins.
func DetectLeadSource(transcript string) LeadSourceResult {
	text := normalize.Normalize(transcript)

	for _, entry := range constants.LeadSourceKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, normalize.Normalize(keyword)) {
				return LeadSourceResult{LeadSource: entry.Source, Confidence: DetectedConfidence}
			}
		}
	}
	return LeadSourceResult{}
}
