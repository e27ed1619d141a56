package detect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/normalize"
)

// VolumeResult is the deterministic volume signal for a transcript.
// Volume is nil when no unit phrase was found.
type VolumeResult struct {
	Volume     *entity.Volume `json:"volume"`
	Confidence float64        `json:"confidence"`
}

// quantityPatterns[unit][i] finds a number standing at most three words
// before the i-th phrase of that unit, e.g. "40 citas a la semana".
var quantityPatterns = map[string][]*regexp.Regexp{}

func init() {
	for unit, phrases := range constants.VolumeUnitKeywords {
		for _, phrase := range phrases {
			p := regexp.QuoteMeta(normalize.Normalize(phrase))
			re := regexp.MustCompile(`(?:^|\s)(\d+)(?:\s[a-z0-9]+){0,3}?\s` + p + `(?:\s|$)`)
			quantityPatterns[unit] = append(quantityPatterns[unit], re)
		}
	}
}

// DetectVolume looks for a volume unit phrase ("a la semana", "al mes", …)
// in the normalized transcript, then tries to attach the nearest preceding
// quantity. Peak markers ("temporada alta") flag the volume as a peak figure.
// Units are tested in declared vocabulary order; the first hit wins.
func DetectVolume(transcript string) VolumeResult {
	text := normalize.Normalize(transcript)

	for _, unit := range constants.Tokens(constants.DomainVolumeUnit) {
		for i, phrase := range constants.VolumeUnitKeywords[unit] {
			if !strings.Contains(text, normalize.Normalize(phrase)) {
				continue
			}
			u := unit
			vol := &entity.Volume{Unit: &u, IsPeak: hasPeakMarker(text)}
			if m := quantityPatterns[unit][i].FindStringSubmatch(text); m != nil {
				if q, err := strconv.ParseFloat(m[1], 64); err == nil {
					vol.Quantity = &q
				}
			}
			return VolumeResult{Volume: vol, Confidence: DetectedConfidence}
		}
	}
	return VolumeResult{}
}

func hasPeakMarker(normalizedText string) bool {
	for _, marker := range constants.PeakKeywords {
		if strings.Contains(normalizedText, normalize.Normalize(marker)) {
			return true
		}
	}
	return false
}
