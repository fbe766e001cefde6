package services

import (
	"slices"

	"lawflow/internal/domain"
)

// Checklist stages, in conveyancing order.
const (
	StageIntake    = "Admision"
	StageDD        = "DD"
	StageContracts = "Contratos"
	StageNotary    = "Notaría"
	StageClosing   = "Cierre"
	StageRegistry  = "Registro"
)

var purchaseChecklist = []domain.ChecklistStep{
	{Stage: StageIntake, Label: "KYC / Incorporación del cliente + carta de compromiso"},
	{Stage: StageIntake, Label: "Recopilar pasaportes + prueba de fondos"},
	{Stage: StageIntake, Label: "Solicitar NIE (si es necesario)"},
	{Stage: StageDD, Label: "Solicitar Nota Simple (extracto del Registro de la Propiedad)"},
	{Stage: StageDD, Label: "Verificar cargas/gravámenes + titularidad"},
	{Stage: StageDD, Label: "Verificar pagos de IBI y cuotas comunitarias"},
	{Stage: StageDD, Label: "Verificar permisos, LPO / AFO si aplicable"},
	{Stage: StageContracts, Label: "Revisar/preparar contrato de reserva"},
	{Stage: StageContracts, Label: "Redactar/revisar contrato de Arras (depósito)"},
	{Stage: StageNotary, Label: "Coordinar cita notarial (Escritura)"},
	{Stage: StageNotary, Label: "Preparar declaración de finalización + ruta de fondos"},
	{Stage: StageClosing, Label: "Preparar paquete de presentación ITP/AJD"},
	{Stage: StageRegistry, Label: "Presentar escritura al Registro de la Propiedad"},
	{Stage: StageRegistry, Label: "Actualizar catastro / suministros y débitos directos"},
}

var saleChecklist = []domain.ChecklistStep{
	{Stage: StageIntake, Label: "Carta de compromiso + KYC del vendedor"},
	{Stage: StageDD, Label: "Obtener Nota Simple + verificar título"},
	{Stage: StageDD, Label: "Certificado energético + divulgaciones requeridas"},
	{Stage: StageContracts, Label: "Redactar/revisar reserva + Arras"},
	{Stage: StageNotary, Label: "Coordinación notarial + cancelar cargas (si las hay)"},
	{Stage: StageClosing, Label: "Calcular Plusvalía municipal + orientación sobre CGT"},
	{Stage: StageRegistry, Label: "Registrar transferencia + notificar suministros/comunidad"},
}

type municipalityRules struct {
	checklistOverrides []string
	documentTemplates  []string
}

// Costa del Sol rules, keyed by municipality then transaction type.
var municipalities = map[string]map[string]municipalityRules{
	"Marbella": {
		domain.TransactionPurchase: {
			checklistOverrides: []string{
				"Check LPO / AFO status (urban planning)",
				"Community (HOA) statutes review for short-let restrictions",
			},
			documentTemplates: []string{"Notary agenda (Marbella)", "Completion statement (Marbella)", "Utilities transfer letter (Marbella)"},
		},
		domain.TransactionSale: {
			checklistOverrides: []string{"Mortgage cancellation coordination (common in Marbella resales)"},
			documentTemplates:  []string{"Seller pack checklist (Marbella)", "Plusvalía calculation worksheet (Marbella)"},
		},
	},
	"Mijas": {
		domain.TransactionPurchase: {
			checklistOverrides: []string{"Check rural classification / AFO where relevant (Mijas)"},
			documentTemplates:  []string{"AFO/LFO request memo (Mijas)", "Notary agenda (Mijas)"},
		},
		domain.TransactionSale: {
			checklistOverrides: []string{"Town hall fee confirmations (Mijas)"},
			documentTemplates:  []string{"Seller disclosure memo (Mijas)"},
		},
	},
	"Estepona": {
		domain.TransactionPurchase: {
			checklistOverrides: []string{"New-build: developer guarantees & snagging plan (Estepona)"},
			documentTemplates:  []string{"Developer handover checklist (Estepona)"},
		},
		domain.TransactionSale: {
			checklistOverrides: []string{"Tourist license transfer considerations (Estepona)"},
			documentTemplates:  []string{"Tourist license transfer note (Estepona)"},
		},
	},
}

type templateService struct{}

func NewTemplateService() domain.TemplateService {
	return templateService{}
}

// Lookup never fails; unknown combinations have empty lists.
func (templateService) Lookup(municipality, transactionType string) domain.MunicipalityTemplate {
	rules := municipalities[municipality][transactionType]
	return domain.MunicipalityTemplate{
		Municipality:       municipality,
		TransactionType:    transactionType,
		ChecklistOverrides: nonNil(slices.Clone(rules.checklistOverrides)),
		DocumentTemplates:  nonNil(slices.Clone(rules.documentTemplates)),
	}
}

func (templateService) StandardChecklist(transactionType string) []domain.ChecklistStep {
	switch transactionType {
	case domain.TransactionPurchase:
		return slices.Clone(purchaseChecklist)
	case domain.TransactionSale:
		return slices.Clone(saleChecklist)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
