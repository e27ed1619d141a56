package detect

import (
	"strings"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/normalize"
)

// IntegrationsResult is the deterministic integration signal for a transcript.
type IntegrationsResult struct {
	Integrations []string `json:"integrations"`
	Confidence   float64  `json:"confidence"`
}

// DetectIntegrations scans the normalized transcript for each integration
// category's keyword phrases. A category is detected when any of its phrases
// is contained in the transcript; all matched categories are returned in
// declared vocabulary order. Confidence is DetectedConfidence when at least
// one category matched, 0 otherwise.
func DetectIntegrations(transcript string) IntegrationsResult {
	text := normalize.Normalize(transcript)

	matched := []string{}
	for _, category := range constants.Tokens(constants.DomainIntegration) {
		for _, keyword := range constants.IntegrationKeywords[category] {
			if strings.Contains(text, normalize.Normalize(keyword)) {
				matched = append(matched, category)
				break
			}
		}
	}

	confidence := 0.0
	if len(matched) > 0 {
		confidence = DetectedConfidence
	}
	return IntegrationsResult{Integrations: matched, Confidence: confidence}
}
