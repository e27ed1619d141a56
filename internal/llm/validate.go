package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/FrancoBrice/sales-metrics-sub001/internal/common"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap". This is the
// strict contract: it fails on any violation and never drops values. Keep it
// for internally-trusted payloads only; untrusted model output goes through
// the lenient MapPayload instead.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateDeterministicResult asserts the structural invariants of detector
// output, confidence range [0,1] included. A failure here indicates a
// detector bug, not bad input, so callers treat it as fatal for the meeting.
func ValidateDeterministicResult(res entity.DeterministicResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return common.NewAppError("DETECTOR_INVARIANT", "encode deterministic result", err)
	}
	if err := ValidateJSONAgainstSchema(BuildDeterministicResultSchema(), b); err != nil {
		return common.NewAppError("DETECTOR_INVARIANT", "deterministic result violates schema", err)
	}
	return nil
}
