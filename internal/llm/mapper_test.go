package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPayloadNil(t *testing.T) {
	assert.Nil(t, MapPayload(nil))
}

func TestMapPayloadDropsOutOfDomainValues(t *testing.T) {
	ex := MapPayload(map[string]any{
		"industry":   "NOT_A_REAL_INDUSTRY",
		"painPoints": []any{"VOLUMEN_ALTO", "FAKE"},
	})

	require.NotNil(t, ex)
	assert.Nil(t, ex.Industry)
	assert.Equal(t, []string{"VOLUMEN_ALTO"}, ex.PainPoints)
}

func TestMapPayloadKeepsInDomainValues(t *testing.T) {
	ex := MapPayload(map[string]any{
		"industry":      "PELUQUERIA",
		"businessModel": "B2C",
		"sentiment":     "POSITIVO",
		"urgency":       "INMEDIATA",
		"integrations":  []any{"SISTEMA_CITAS", "CRM"},
		"objections":    []any{"PRECIO"},
	})

	require.NotNil(t, ex)
	require.NotNil(t, ex.Industry)
	assert.Equal(t, "PELUQUERIA", *ex.Industry)
	assert.Equal(t, "B2C", *ex.BusinessModel)
	assert.Equal(t, "POSITIVO", *ex.Sentiment)
	assert.Equal(t, "INMEDIATA", *ex.Urgency)
	assert.Equal(t, []string{"SISTEMA_CITAS", "CRM"}, ex.Integrations)
	assert.Equal(t, []string{"PRECIO"}, ex.Objections)
}

func TestMapPayloadIgnoresWrongTypesAndUnknownKeys(t *testing.T) {
	ex := MapPayload(map[string]any{
		"industry":     42,
		"painPoints":   "NO_SHOWS", // bare string instead of list
		"integrations": []any{1, true, "CRM"},
		"nonsense":     map[string]any{"deep": "value"},
	})

	require.NotNil(t, ex)
	assert.Nil(t, ex.Industry)
	assert.Equal(t, []string{"NO_SHOWS"}, ex.PainPoints)
	assert.Equal(t, []string{"CRM"}, ex.Integrations)
}

func TestMapPayloadVolume(t *testing.T) {
	ex := MapPayload(map[string]any{
		"volume": map[string]any{"quantity": 40.0, "unit": "SEMANAL", "isPeak": true},
	})

	require.NotNil(t, ex)
	require.NotNil(t, ex.Volume)
	assert.Equal(t, 40.0, *ex.Volume.Quantity)
	assert.Equal(t, "SEMANAL", *ex.Volume.Unit)
	assert.True(t, ex.Volume.IsPeak)
}

func TestMapPayloadVolumeLegacyUnit(t *testing.T) {
	ex := MapPayload(map[string]any{
		"volume": map[string]any{"quantity": "15", "unit": "SEMANA"},
	})

	require.NotNil(t, ex)
	require.NotNil(t, ex.Volume)
	assert.Equal(t, 15.0, *ex.Volume.Quantity)
	assert.Equal(t, "SEMANAL", *ex.Volume.Unit)
	assert.False(t, ex.Volume.IsPeak)
}

func TestMapPayloadVolumeOmittedWhenEmpty(t *testing.T) {
	withGarbage := MapPayload(map[string]any{
		"volume": map[string]any{"unit": "FORTNIGHTLY", "isPeak": true},
	})
	require.NotNil(t, withGarbage)
	assert.Nil(t, withGarbage.Volume)

	withoutVolume := MapPayload(map[string]any{"industry": "SPA"})
	require.NotNil(t, withoutVolume)
	assert.Nil(t, withoutVolume.Volume)
}

func TestDecodeContentWithSurroundingProse(t *testing.T) {
	raw := []byte("Aquí está el análisis:\n{\"industry\": \"SPA\", \"painPoints\": [\"NO_SHOWS\"]}\nEspero que sirva.")

	payload, err := DecodeContent(raw)
	require.NoError(t, err)
	assert.Equal(t, "SPA", payload["industry"])
}

func TestDecodeContentNoJSON(t *testing.T) {
	_, err := DecodeContent([]byte("lo siento, no puedo analizar esta llamada"))
	assert.Error(t, err)
}
