package model

// TemplateType categoría de plantilla de la carta
type TemplateType string

const (
	TemplateSalud   TemplateType = "salud"
	TemplateGeneral TemplateType = "general"
)

// ClientInfo datos del cliente al que se dirige la carta
type ClientInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// VehicleItem un bien cubierto dentro de una póliza general (p.ej. un vehículo).
// DeclaredValue lo llena el usuario antes de generar la carta.
type VehicleItem struct {
	Description   string  `json:"description"`
	InsuredValue  float64 `json:"insuredValue"`
	DeclaredValue float64 `json:"declaredValue"`
}

// ManualFields campos editables por el usuario antes de renderizar.
// Los campos Original* guardan el valor sembrado desde el registro fuente.
type ManualFields struct {
	InsuredMatter          string        `json:"insuredMatter,omitempty"`
	OriginalInsuredMatter  string        `json:"originalInsuredMatter,omitempty"`
	InsuredMembers         []string      `json:"insuredMembers,omitempty"`
	OriginalInsuredMembers []string      `json:"originalInsuredMembers,omitempty"`
	SpecificConditions     string        `json:"specificConditions,omitempty"`
	Deductibles            float64       `json:"deductibles"`
	DeductiblesCurrency    string        `json:"deductiblesCurrency,omitempty"`
	Territoriality         float64       `json:"territoriality"`
	TerritorialityCurrency string        `json:"territorialityCurrency,omitempty"`
	RenewalPremium         float64       `json:"renewalPremium"`
	Premium                float64       `json:"premium"`
	OriginalPremium        float64       `json:"originalPremium"`
	InsuredValue           float64       `json:"insuredValue"`
	OriginalInsuredValue   float64       `json:"originalInsuredValue"`
	Coinsurance            string        `json:"coinsurance,omitempty"`
	Vehicles               []VehicleItem `json:"vehicles,omitempty"`
}

// PolicyForLetter una póliza tal como aparece en la carta
type PolicyForLetter struct {
	ExpiryDate     string       `json:"expiryDate"` // ya formateada para mostrar
	PolicyNumber   string       `json:"policyNumber"`
	Company        string       `json:"company"`
	Branch         string       `json:"branch"`
	InsuredValue   float64      `json:"insuredValue"`
	Premium        float64      `json:"premium"`
	InsuredMembers []string     `json:"insuredMembers,omitempty"` // salud: titular primero
	ManualFields   ManualFields `json:"manualFields"`
}

// LetterData una carta de aviso de vencimiento dirigida a un cliente
type LetterData struct {
	ID                   string            `json:"id"`
	SourceRecordIDs      []string          `json:"sourceRecordIds"`
	TemplateType         TemplateType      `json:"templateType"`
	ReferenceNumber      string            `json:"referenceNumber"`
	Date                 string            `json:"date"`
	Client               ClientInfo        `json:"client"`
	Policies             []PolicyForLetter `json:"policies"`
	Executive            string            `json:"executive"`
	NeedsReview          bool              `json:"needsReview"`
	MissingData          []string          `json:"missingData"`
	AdditionalConditions string            `json:"additionalConditions,omitempty"`
}

// GeneratedLetter resultado de renderizar una carta
type GeneratedLetter struct {
	LetterID     string       `json:"letterId"`
	ClientName   string       `json:"clientName"`
	TemplateType TemplateType `json:"templateType"`
	FileName     string       `json:"fileName"`
	PolicyCount  int          `json:"policyCount"`
	NeedsReview  bool         `json:"needsReview"`
	MissingData  []string     `json:"missingData"`
}

// GenerationResult resultado agregado de una generación por lote
type GenerationResult struct {
	Success        bool              `json:"success"`
	Letters        []GeneratedLetter `json:"letters"`
	Errors         []string          `json:"errors"`
	TotalGenerated int               `json:"totalGenerated"`
}
