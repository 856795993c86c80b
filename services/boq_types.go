package services

import "time"

// BOQ item categories.
const (
	CategoryMaterial    = "Material"
	CategoryLabor       = "Labor"
	CategoryEquipment   = "Equipment"
	CategorySubcontract = "Subcontract"
	CategoryOther       = "Other"
)

// Categories lists every BOQ item category in emission order.
var Categories = []string{
	CategoryMaterial,
	CategoryLabor,
	CategoryEquipment,
	CategorySubcontract,
	CategoryOther,
}

// BOQGenerationOptions is the pricing configuration for a generation run.
// ProfitMargin is accepted for forward compatibility but is not applied in
// any cost formula.
type BOQGenerationOptions struct {
	IncludeLabor       bool    `json:"includeLabor"`
	IncludeEquipment   bool    `json:"includeEquipment"`
	IncludeOverhead    bool    `json:"includeOverhead"`
	LaborRate          float64 `json:"laborRate"`          // currency/hour
	EquipmentRate      float64 `json:"equipmentRate"`      // currency/hour
	OverheadPercentage float64 `json:"overheadPercentage"` // percent of direct costs
	ProfitMargin       float64 `json:"profitMargin"`       // percent, currently inert
	Currency           string  `json:"currency"`
}

// DefaultOptions returns the fixed baseline configuration. Callers override
// individual fields before passing the result to GenerateBOQ.
func DefaultOptions() BOQGenerationOptions {
	return BOQGenerationOptions{
		IncludeLabor:       true,
		IncludeEquipment:   true,
		IncludeOverhead:    true,
		LaborRate:          50,
		EquipmentRate:      25,
		OverheadPercentage: 15,
		ProfitMargin:       20,
		Currency:           "USD",
	}
}

// BOQItem is one priced line in the generated bill of quantities.
type BOQItem struct {
	ID             string  `json:"id"`
	ItemNumber     string  `json:"itemNumber"` // sequential, "N.0"
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	UnitRate       float64 `json:"unitRate"`
	TotalAmount    float64 `json:"totalAmount"`
	Category       string  `json:"category"`
	Specifications string  `json:"specifications,omitempty"`
	Remarks        string  `json:"remarks,omitempty"`
}

// BOQSummary aggregates costs by category.
type BOQSummary struct {
	MaterialCost  float64 `json:"materialCost"`
	LaborCost     float64 `json:"laborCost"`
	EquipmentCost float64 `json:"equipmentCost"`
	OverheadCost  float64 `json:"overheadCost"`
	TotalCost     float64 `json:"totalCost"`
	ItemCount     int     `json:"itemCount"`
}

// BOQMetadata describes the generation run.
type BOQMetadata struct {
	SourceFile     string    `json:"sourceFile"`
	GeneratedAt    time.Time `json:"generatedAt"`
	ProcessingMS   int64     `json:"processingTime"` // elapsed milliseconds
	Confidence     int       `json:"confidence"`     // 0-100
	ComplexityName string    `json:"complexity"`
}

// BOQGenerationResult is the generator's complete output.
type BOQGenerationResult struct {
	Items    []BOQItem   `json:"items"`
	Summary  BOQSummary  `json:"summary"`
	Metadata BOQMetadata `json:"metadata"`
}
