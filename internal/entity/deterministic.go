package entity

// DetectorConfidence carries one coarse confidence per deterministic signal.
// Values are 0 (nothing matched) or 0.8 (at least one keyword matched);
// anything outside [0,1] is a detector bug and fails strict validation.
type DetectorConfidence struct {
	LeadSource   float64 `json:"leadSource"`
	Volume       float64 `json:"volume"`
	Integrations float64 `json:"integrations"`
}

// DeterministicResult is the transient output of the rule-based detectors for
// one transcript. It is never persisted on its own; the orchestrator folds it
// into the model-derived Extraction per the active merge policy.
type DeterministicResult struct {
	LeadSource   *string            `json:"leadSource"`
	Volume       *Volume            `json:"volume"`
	Integrations []string           `json:"integrations"`
	Confidence   DetectorConfidence `json:"confidence"`
}
