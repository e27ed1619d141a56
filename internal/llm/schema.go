package llm

import (
	"github.com/FrancoBrice/sales-metrics-sub001/constants"
)

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is passed to the model as a structured output constraint;
// the lenient mapper, not this schema, is what actually guards the record.
func BuildExtractionJSONSchema() map[string]any {
	props := map[string]any{
		"industry":            enumProp(constants.DomainIndustry),
		"businessModel":       enumProp(constants.DomainBusinessModel),
		"leadSource":          enumProp(constants.DomainLeadSource),
		"processMaturity":     enumProp(constants.DomainProcessMaturity),
		"toolingMaturity":     enumProp(constants.DomainToolingMaturity),
		"knowledgeComplexity": enumProp(constants.DomainKnowledgeComplexity),
		"riskLevel":           enumProp(constants.DomainRiskLevel),
		"urgency":             enumProp(constants.DomainUrgency),
		"sentiment":           enumProp(constants.DomainSentiment),
		"jtbdPrimary":         enumSetProp(constants.DomainJTBD),
		"painPoints":          enumSetProp(constants.DomainPainPoint),
		"integrations":        enumSetProp(constants.DomainIntegration),
		"successMetrics":      enumSetProp(constants.DomainSuccessMetric),
		"objections":          enumSetProp(constants.DomainObjection),
		"volume":              volumeProp(),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

// BuildDeterministicResultSchema describes the shape the rule-based detectors
// must produce. Used only on internally-trusted data, where a violation means
// a detector bug and must fail hard rather than be silently dropped.
func BuildDeterministicResultSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"leadSource": map[string]any{
				"type": []string{"string", "null"},
				"enum": enumWithNull(constants.DomainLeadSource),
			},
			"volume": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"quantity": map[string]any{"type": []string{"number", "null"}},
					"unit": map[string]any{
						"type": []string{"string", "null"},
						"enum": enumWithNull(constants.DomainVolumeUnit),
					},
					"isPeak": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
			"integrations": enumSetProp(constants.DomainIntegration),
			"confidence": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"leadSource":   confidenceProp(),
					"volume":       confidenceProp(),
					"integrations": confidenceProp(),
				},
				"required": []string{"leadSource", "volume", "integrations"},
			},
		},
		"required": []string{"integrations", "confidence"},
	}
}

func enumProp(d constants.Domain) map[string]any {
	return map[string]any{
		"type": "string",
		"enum": constants.Tokens(d),
	}
}

func enumSetProp(d constants.Domain) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       enumProp(d),
		"uniqueItems": true,
	}
}

func enumWithNull(d constants.Domain) []any {
	vals := []any{nil}
	for _, tok := range constants.Tokens(d) {
		vals = append(vals, tok)
	}
	return vals
}

func confidenceProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
}

func volumeProp() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quantity": map[string]any{"type": "number"},
			"unit":     enumProp(constants.DomainVolumeUnit),
			"isPeak":   map[string]any{"type": "boolean"},
		},
		"additionalProperties": false,
	}
}
