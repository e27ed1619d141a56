package entity

// Volume captures the interaction volume a prospect states during a call.
// Quantity and Unit are independently optional; a transcript can mention
// "unas 40 a la semana" (both) or just "harto movimiento semanal" (unit only).
type Volume struct {
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	IsPeak   bool     `json:"isPeak"`
}

// Extraction is the canonical structured result for one meeting transcript.
// Every field is enum-typed: scalars hold exactly one token of their domain
// or nil, collections hold zero or more distinct tokens. The mapper and the
// merge policy are the only writers, and both go through the lenient casts,
// so an Extraction never carries an out-of-domain token.
type Extraction struct {
	Industry            *string  `json:"industry,omitempty"`
	BusinessModel       *string  `json:"businessModel,omitempty"`
	LeadSource          *string  `json:"leadSource,omitempty"`
	ProcessMaturity     *string  `json:"processMaturity,omitempty"`
	ToolingMaturity     *string  `json:"toolingMaturity,omitempty"`
	KnowledgeComplexity *string  `json:"knowledgeComplexity,omitempty"`
	RiskLevel           *string  `json:"riskLevel,omitempty"`
	Urgency             *string  `json:"urgency,omitempty"`
	Sentiment           *string  `json:"sentiment,omitempty"`
	JtbdPrimary         []string `json:"jtbdPrimary,omitempty"`
	PainPoints          []string `json:"painPoints,omitempty"`
	Integrations        []string `json:"integrations,omitempty"`
	SuccessMetrics      []string `json:"successMetrics,omitempty"`
	Objections          []string `json:"objections,omitempty"`
	Volume              *Volume  `json:"volume,omitempty"`
}

// IsEmpty reports whether no field carries a value.
func (e *Extraction) IsEmpty() bool {
	if e == nil {
		return true
	}
	return e.Industry == nil && e.BusinessModel == nil && e.LeadSource == nil &&
		e.ProcessMaturity == nil && e.ToolingMaturity == nil &&
		e.KnowledgeComplexity == nil && e.RiskLevel == nil && e.Urgency == nil &&
		e.Sentiment == nil && len(e.JtbdPrimary) == 0 && len(e.PainPoints) == 0 &&
		len(e.Integrations) == 0 && len(e.SuccessMetrics) == 0 &&
		len(e.Objections) == 0 && e.Volume == nil
}
