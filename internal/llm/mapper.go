package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// DecodeContent turns raw model output into a key/value payload. It tolerates
// surrounding prose by extracting the first balanced JSON object before
// decoding. An error here means "no usable content": there was nothing
// JSON-shaped to map at all.
func DecodeContent(raw []byte) (map[string]any, error) {
	obj, ok := FirstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	var payload map[string]any
	if err := json.Unmarshal(obj, &payload); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	return payload, nil
}

// MapPayload converts an arbitrary decoded payload into a well-formed
// Extraction, or nil when the payload itself is absent. Every value is cast
// leniently: out-of-domain scalars become nil, out-of-domain collection
// elements are dropped, wrong-typed values are ignored, unknown keys are
// skipped. It never fails, no matter how malformed the input: partial
// credit beats rejecting the whole record.
func MapPayload(payload map[string]any) *entity.Extraction {
	if payload == nil {
		return nil
	}

	return &entity.Extraction{
		Industry:            castScalarField(payload, "industry", constants.DomainIndustry),
		BusinessModel:       castScalarField(payload, "businessModel", constants.DomainBusinessModel),
		LeadSource:          castScalarField(payload, "leadSource", constants.DomainLeadSource),
		ProcessMaturity:     castScalarField(payload, "processMaturity", constants.DomainProcessMaturity),
		ToolingMaturity:     castScalarField(payload, "toolingMaturity", constants.DomainToolingMaturity),
		KnowledgeComplexity: castScalarField(payload, "knowledgeComplexity", constants.DomainKnowledgeComplexity),
		RiskLevel:           castScalarField(payload, "riskLevel", constants.DomainRiskLevel),
		Urgency:             castScalarField(payload, "urgency", constants.DomainUrgency),
		Sentiment:           castScalarField(payload, "sentiment", constants.DomainSentiment),
		JtbdPrimary:         castSetField(payload, "jtbdPrimary", constants.DomainJTBD),
		PainPoints:          castSetField(payload, "painPoints", constants.DomainPainPoint),
		Integrations:        castSetField(payload, "integrations", constants.DomainIntegration),
		SuccessMetrics:      castSetField(payload, "successMetrics", constants.DomainSuccessMetric),
		Objections:          castSetField(payload, "objections", constants.DomainObjection),
		Volume:              castVolume(payload["volume"]),
	}
}

func castScalarField(payload map[string]any, key string, d constants.Domain) *string {
	s, ok := payload[key].(string)
	if !ok {
		return nil
	}
	tok, ok := constants.CastScalar(d, constants.CanonicalToken(d, s))
	if !ok {
		return nil
	}
	return &tok
}

func castSetField(payload map[string]any, key string, d constants.Domain) []string {
	switch v := payload[key].(type) {
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return constants.CastSet(d, values)
	case string:
		// some responses collapse a one-element list into a bare string
		return constants.CastSet(d, []string{v})
	default:
		return nil
	}
}

// castVolume builds the volume sub-record only when quantity or unit is
// present. isPeak defaults to false when missing. The legacy unit spelling
// SEMANA is normalized to SEMANAL before casting, for compatibility with
// previously stored raw model responses.
func castVolume(v any) *entity.Volume {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	quantity := numberValue(m["quantity"])

	var unit *string
	if s, ok := m["unit"].(string); ok {
		if tok, ok := constants.CastScalar(constants.DomainVolumeUnit, constants.CanonicalToken(constants.DomainVolumeUnit, s)); ok {
			unit = &tok
		}
	}

	if quantity == nil && unit == nil {
		return nil
	}

	isPeak, _ := m["isPeak"].(bool)
	return &entity.Volume{Quantity: quantity, Unit: unit, IsPeak: isPeak}
}

func numberValue(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &f
		}
	}
	return nil
}
