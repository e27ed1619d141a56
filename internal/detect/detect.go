// Package detect holds the rule-based transcript classifiers. They are pure
// functions over static keyword tables: no model call, no I/O, no failure
// mode. Absence of matches yields an empty result, never an error.
package detect

import (
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// DetectedConfidence is the coarse confidence assigned when at least one
// keyword matched. Confidence is a property of "any detection happened",
// not computed per category.
const DetectedConfidence = 0.8

// Detect runs every deterministic detector over one transcript and bundles
// the signals for reconciliation with the model-derived extraction.
func Detect(transcript string) entity.DeterministicResult {
	integrations := DetectIntegrations(transcript)
	leadSource := DetectLeadSource(transcript)
	volume := DetectVolume(transcript)

	res := entity.DeterministicResult{
		Integrations: integrations.Integrations,
		Volume:       volume.Volume,
		Confidence: entity.DetectorConfidence{
			LeadSource:   leadSource.Confidence,
			Volume:       volume.Confidence,
			Integrations: integrations.Confidence,
		},
	}
	if leadSource.LeadSource != "" {
		src := leadSource.LeadSource
		res.LeadSource = &src
	}
	return res
}
