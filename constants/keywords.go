package constants

// Keyword tables for the deterministic detectors. Phrases are written the way
// prospects actually say them in calls; matching is done over normalized text
// (lower-cased, diacritics folded), so accents and casing here are irrelevant.

// IntegrationKeywords maps each integration category to representative
// phrases. A category counts as detected when any of its phrases appears in
// the transcript. Iteration follows Tokens(DomainIntegration) order.
var IntegrationKeywords = map[string][]string{
	IntegrationSistemaCitas: {
		"sistema de citas", "citas online", "agenda online", "agendamiento",
		"reserva de horas", "agendar hora",
	},
	IntegrationCRM: {
		"crm", "hubspot", "salesforce", "pipedrive", "zoho",
	},
	IntegrationCalendario: {
		"google calendar", "calendly", "calendario compartido", "outlook calendar",
	},
	IntegrationPagos: {
		"webpay", "transbank", "mercado pago", "flow", "pasarela de pago",
		"link de pago",
	},
	IntegrationBaseDatos: {
		"base de datos", "planilla de clientes", "google sheets", "excel de clientes",
	},
	IntegrationERP: {
		"erp", "softland", "defontana", "sap",
	},
	IntegrationEmailMarketing: {
		"mailchimp", "email marketing", "correos masivos", "newsletter",
	},
	IntegrationRedesSociales: {
		"redes sociales", "instagram", "facebook", "mensajes de whatsapp",
	},
}

// LeadSourceKeywords is ordered: the first source with a matching phrase wins,
// since lead source is a scalar field.
var LeadSourceKeywords = []struct {
	Source   string
	Keywords []string
}{
	{"INSTAGRAM", []string{"por instagram", "vimos en instagram", "un reel", "historias de instagram"}},
	{"FACEBOOK", []string{"por facebook", "grupo de facebook", "anuncio de facebook"}},
	{"GOOGLE", []string{"por google", "buscando en google", "nos googlearon", "busqueda en internet"}},
	{"REFERIDO", []string{"referido", "nos recomendaron", "recomendacion", "boca a boca", "un colega me conto"}},
	{"SITIO_WEB", []string{"sitio web", "pagina web", "formulario de contacto", "desde la web"}},
	{"WHATSAPP", []string{"por whatsapp", "nos escribieron al whatsapp"}},
	{"EVENTO", []string{"en una feria", "en un evento", "en la expo", "un seminario"}},
}

// VolumeUnitKeywords maps each volume unit to the phrases that name it.
// Note "año" folds to "ano" under normalization.
var VolumeUnitKeywords = map[string][]string{
	VolumeUnitDiario:  {"al dia", "por dia", "diario", "diarias", "diarios", "cada dia"},
	VolumeUnitSemanal: {"a la semana", "por semana", "semanal", "semanales", "cada semana"},
	VolumeUnitMensual: {"al mes", "por mes", "mensual", "mensuales", "cada mes"},
	VolumeUnitAnual:   {"al ano", "por ano", "anual", "anuales", "cada ano"},
}

// PeakKeywords flag that a stated volume refers to a high-season peak.
var PeakKeywords = []string{
	"temporada alta", "en peak", "epoca peak", "fechas peak", "dias peak",
	"fines de semana largos",
}
