package core

import (
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// MergePolicy controls how deterministic detector signals are reconciled
// with the model-derived extraction.
type MergePolicy string

const (
	// MergeFillNulls fills only fields the model left empty, and only from
	// signals whose confidence clears the configured minimum. Model output
	// is never overridden.
	MergeFillNulls MergePolicy = "fill_nulls"
	// MergeOff keeps the model output untouched.
	MergeOff MergePolicy = "off"
)

// ParseMergePolicy maps a config string to a policy, defaulting to
// MergeFillNulls for anything unrecognized.
func ParseMergePolicy(s string) MergePolicy {
	if MergePolicy(s) == MergeOff {
		return MergeOff
	}
	return MergeFillNulls
}

// mergeExtraction reconciles one meeting's signals. base may be nil (the
// model produced nothing usable); the result is nil only when there is
// nothing to report from either source. base is not mutated.
func mergeExtraction(base *entity.Extraction, det entity.DeterministicResult, policy MergePolicy, minConfidence float64) *entity.Extraction {
	if policy == MergeOff {
		return base
	}

	out := &entity.Extraction{}
	if base != nil {
		*out = *base
	}

	if out.LeadSource == nil && det.LeadSource != nil && det.Confidence.LeadSource >= minConfidence {
		src := *det.LeadSource
		out.LeadSource = &src
	}
	if len(out.Integrations) == 0 && len(det.Integrations) > 0 && det.Confidence.Integrations >= minConfidence {
		out.Integrations = append([]string(nil), det.Integrations...)
	}
	if out.Volume == nil && det.Volume != nil && det.Confidence.Volume >= minConfidence {
		vol := *det.Volume
		out.Volume = &vol
	}

	if base == nil && out.IsEmpty() {
		return nil
	}
	return out
}
