package constants

import "strings"

// Domain identifies one controlled vocabulary of the extraction record.
type Domain string

const (
	DomainIndustry            Domain = "industry"
	DomainBusinessModel       Domain = "business_model"
	DomainLeadSource          Domain = "lead_source"
	DomainProcessMaturity     Domain = "process_maturity"
	DomainToolingMaturity     Domain = "tooling_maturity"
	DomainKnowledgeComplexity Domain = "knowledge_complexity"
	DomainRiskLevel           Domain = "risk_level"
	DomainUrgency             Domain = "urgency"
	DomainSentiment           Domain = "sentiment"
	DomainVolumeUnit          Domain = "volume_unit"
	DomainJTBD                Domain = "jtbd_primary"
	DomainPainPoint           Domain = "pain_points"
	DomainIntegration         Domain = "integrations"
	DomainSuccessMetric       Domain = "success_metrics"
	DomainObjection           Domain = "objections"
)

// Integration category tokens are referenced by the deterministic detectors,
// so they get named constants. Other domains are only ever handled as tokens.
const (
	IntegrationSistemaCitas   = "SISTEMA_CITAS"
	IntegrationCRM            = "CRM"
	IntegrationCalendario     = "CALENDARIO"
	IntegrationPagos          = "PAGOS"
	IntegrationBaseDatos      = "BASE_DATOS"
	IntegrationERP            = "ERP"
	IntegrationEmailMarketing = "EMAIL_MARKETING"
	IntegrationRedesSociales  = "REDES_SOCIALES"
)

// Volume units. SEMANA is a legacy spelling kept as an alias only.
const (
	VolumeUnitDiario  = "DIARIO"
	VolumeUnitSemanal = "SEMANAL"
	VolumeUnitMensual = "MENSUAL"
	VolumeUnitAnual   = "ANUAL"
)

// domainTokens holds every controlled vocabulary. Token order is stable and
// matters for detectors (declared order = match priority) and for prompts.
var domainTokens = map[Domain][]string{
	DomainIndustry: {
		"PELUQUERIA", "BARBERIA", "CENTRO_ESTETICA", "SPA", "CLINICA_DENTAL",
		"CLINICA_MEDICA", "KINESIOLOGIA", "PSICOLOGIA", "VETERINARIA",
		"GIMNASIO", "ESCUELA_DEPORTES", "EDUCACION", "INMOBILIARIA",
		"RESTAURANT", "HOTELERIA", "RETAIL", "ECOMMERCE",
		"SERVICIOS_PROFESIONALES", "AUTOMOTRIZ", "CONSTRUCCION",
		"TECNOLOGIA", "OTRO",
	},
	DomainBusinessModel: {"B2B", "B2C", "B2B2C", "MARKETPLACE", "MIXTO"},
	DomainLeadSource: {
		"INSTAGRAM", "FACEBOOK", "GOOGLE", "REFERIDO", "SITIO_WEB",
		"WHATSAPP", "EVENTO", "OTRO",
	},
	DomainProcessMaturity: {"MANUAL", "SEMI_AUTOMATIZADO", "AUTOMATIZADO", "OPTIMIZADO"},
	DomainToolingMaturity: {"SIN_HERRAMIENTAS", "PLANILLAS", "SOFTWARE_BASICO", "SOFTWARE_AVANZADO"},
	DomainKnowledgeComplexity: {"BAJA", "MEDIA", "ALTA"},
	DomainRiskLevel:           {"BAJO", "MEDIO", "ALTO"},
	DomainUrgency:             {"INMEDIATA", "CORTO_PLAZO", "MEDIANO_PLAZO", "SIN_URGENCIA"},
	DomainSentiment:           {"POSITIVO", "NEUTRO", "NEGATIVO"},
	DomainVolumeUnit:          {VolumeUnitDiario, VolumeUnitSemanal, VolumeUnitMensual, VolumeUnitAnual},
	DomainJTBD: {
		"AHORRAR_TIEMPO", "AUMENTAR_VENTAS", "REDUCIR_NO_SHOWS",
		"MEJORAR_ATENCION", "ORDENAR_OPERACION", "ESCALAR_EQUIPO",
	},
	DomainPainPoint: {
		"VOLUMEN_ALTO", "NO_SHOWS", "RESPUESTA_LENTA", "PERDIDA_LEADS",
		"AGENDA_DESORDENADA", "FALTA_SEGUIMIENTO", "COSTO_PERSONAL",
		"HORARIO_LIMITADO", "INFORMACION_DISPERSA", "PROCESOS_MANUALES",
	},
	DomainIntegration: {
		IntegrationSistemaCitas, IntegrationCRM, IntegrationCalendario,
		IntegrationPagos, IntegrationBaseDatos, IntegrationERP,
		IntegrationEmailMarketing, IntegrationRedesSociales,
	},
	DomainSuccessMetric: {
		"TASA_CONVERSION", "TIEMPO_RESPUESTA", "CITAS_AGENDADAS",
		"VENTAS_CERRADAS", "SATISFACCION_CLIENTE", "LEADS_CALIFICADOS",
	},
	DomainObjection: {
		"PRECIO", "DESCONFIANZA_IA", "INTEGRACION_TECNICA",
		"TIEMPO_IMPLEMENTACION", "COMPETENCIA", "PRESUPUESTO",
		"DECISION_TERCEROS",
	},
}

// legacyAliases maps tokens stored by older model responses to their current
// spelling. Applied by CanonicalToken before membership checks.
var legacyAliases = map[Domain]map[string]string{
	DomainVolumeUnit: {
		"SEMANA": VolumeUnitSemanal,
	},
}

// AllDomains returns every declared domain. Order is unspecified.
func AllDomains() []Domain {
	out := make([]Domain, 0, len(domainTokens))
	for d := range domainTokens {
		out = append(out, d)
	}
	return out
}

// Tokens returns a copy of the controlled vocabulary for a domain.
func Tokens(d Domain) []string {
	src := domainTokens[d]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CanonicalToken resolves legacy spellings to the current domain token.
// Unknown values pass through unchanged.
func CanonicalToken(d Domain, value string) string {
	if aliases, ok := legacyAliases[d]; ok {
		if canon, ok := aliases[strings.ToUpper(strings.TrimSpace(value))]; ok {
			return canon
		}
	}
	return value
}

// IsMember reports whether value belongs to the domain. Comparison ignores
// case and surrounding whitespace; exact tokens are what CastScalar returns.
func IsMember(d Domain, value string) bool {
	_, ok := CastScalar(d, value)
	return ok
}

// CastScalar leniently casts an untrusted value into the domain. It returns
// the canonical token and true on membership, or "" and false for empty or
// out-of-domain input. It never fails: this is the silent-drop contract used
// on model output.
func CastScalar(d Domain, value string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return "", false
	}
	for _, tok := range domainTokens[d] {
		if normalized == tok {
			return tok, true
		}
	}
	return "", false
}

// CastSet leniently filters a slice of untrusted values against the domain.
// Non-members are dropped, relative order is preserved, and repeats of an
// already-kept token are collapsed. A nil or fully-dropped input yields nil.
func CastSet(d Domain, values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		tok, ok := CastScalar(d, v)
		if !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
