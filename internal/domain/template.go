package domain

// MunicipalityTemplate holds the extra checklist steps and document templates
// that apply to a municipality and transaction type.
type MunicipalityTemplate struct {
	Municipality       string   `json:"municipality"`
	TransactionType    string   `json:"transaction_type"`
	ChecklistOverrides []string `json:"checklist_overrides"`
	DocumentTemplates  []string `json:"document_templates"`
}

// TemplateService looks up municipality templates.
type TemplateService interface {
	Lookup(municipality, transactionType string) MunicipalityTemplate
	StandardChecklist(transactionType string) []ChecklistStep
}
