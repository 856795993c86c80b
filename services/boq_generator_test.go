package services

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func steelPlateDrawing() *CADBOQData {
	return &CADBOQData{
		Materials: []CADMaterial{
			{Name: "Steel Plate", Type: "steel", Grade: "A36", Quantity: 4, Unit: "ea"},
		},
		TotalArea:   10,
		TotalLength: 25,
		TotalVolume: 1,
		DrawingInfo: DrawingInfo{
			Title:  "bracket.dxf",
			Scale:  "1:1",
			Units:  "mm",
			Layers: []string{"0", "STEEL"},
		},
	}
}

func TestGenerateBOQ_SteelPlateScenario(t *testing.T) {
	result := GenerateBOQ(steelPlateDrawing(), nil)

	// 1 material + 3 labor + 3 equipment + 1 overhead
	if len(result.Items) != 8 {
		t.Fatalf("item count = %d, want 8", len(result.Items))
	}

	material := result.Items[0]
	if material.Category != CategoryMaterial {
		t.Errorf("first item category = %s, want %s", material.Category, CategoryMaterial)
	}
	if material.UnitRate != 150 {
		t.Errorf("material unit rate = %v, want 150", material.UnitRate)
	}
	if material.TotalAmount != 600 {
		t.Errorf("material amount = %v, want 600", material.TotalAmount)
	}
	if !strings.Contains(material.Description, "Grade A36") {
		t.Errorf("material description %q missing grade", material.Description)
	}

	// Low complexity: baseHours = 10 * 0.5 * 1.0 = 5
	if result.Metadata.ComplexityName != ComplexityLow {
		t.Errorf("complexity = %s, want %s", result.Metadata.ComplexityName, ComplexityLow)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"material cost", result.Summary.MaterialCost, 600},
		{"labor cost", result.Summary.LaborCost, 265},
		{"equipment cost", result.Summary.EquipmentCost, 131.25},
		{"overhead cost", result.Summary.OverheadCost, 149.4375},
		{"total cost", result.Summary.TotalCost, 1145.6875},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 0.001 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if result.Summary.ItemCount != len(result.Items) {
		t.Errorf("summary item count = %d, want %d", result.Summary.ItemCount, len(result.Items))
	}
}

func TestGenerateBOQ_TotalIsSumOfCategories(t *testing.T) {
	result := GenerateBOQ(steelPlateDrawing(), nil)

	s := result.Summary
	want := s.MaterialCost + s.LaborCost + s.EquipmentCost + s.OverheadCost
	if math.Abs(s.TotalCost-want) > 0.001 {
		t.Errorf("total cost = %v, want sum of categories %v", s.TotalCost, want)
	}

	var itemSum float64
	for _, it := range result.Items {
		itemSum += it.TotalAmount
	}
	if math.Abs(s.TotalCost-itemSum) > 0.001 {
		t.Errorf("total cost = %v, want sum of item amounts %v", s.TotalCost, itemSum)
	}
}

func TestGenerateBOQ_OptionsDisableCategories(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeLabor = false
	opts.IncludeEquipment = false
	opts.IncludeOverhead = false

	result := GenerateBOQ(steelPlateDrawing(), &opts)

	for _, it := range result.Items {
		if it.Category != CategoryMaterial {
			t.Errorf("unexpected %s item %q with all extras disabled", it.Category, it.Description)
		}
	}
	if result.Summary.LaborCost != 0 || result.Summary.EquipmentCost != 0 || result.Summary.OverheadCost != 0 {
		t.Errorf("non-material costs = %v/%v/%v, want all zero",
			result.Summary.LaborCost, result.Summary.EquipmentCost, result.Summary.OverheadCost)
	}
	if result.Summary.TotalCost != result.Summary.MaterialCost {
		t.Errorf("total cost = %v, want material cost %v", result.Summary.TotalCost, result.Summary.MaterialCost)
	}
}

func TestGenerateBOQ_ZeroOverheadPercentageAddsNoItem(t *testing.T) {
	opts := DefaultOptions()
	opts.OverheadPercentage = 0

	result := GenerateBOQ(steelPlateDrawing(), &opts)

	for _, it := range result.Items {
		if it.Category == CategoryOther {
			t.Errorf("unexpected overhead item %q at 0%%", it.Description)
		}
	}
	if result.Summary.OverheadCost != 0 {
		t.Errorf("overhead cost = %v, want 0", result.Summary.OverheadCost)
	}
}

func TestGenerateBOQ_NoLaborWithoutArea(t *testing.T) {
	data := &CADBOQData{
		Materials: []CADMaterial{
			{Name: "Anchor Bolt", Type: "steel", Quantity: 8, Unit: "ea"},
		},
	}
	result := GenerateBOQ(data, nil)

	for _, it := range result.Items {
		if it.Category == CategoryLabor || it.Category == CategoryEquipment {
			t.Errorf("unexpected %s item %q for drawing with zero area", it.Category, it.Description)
		}
	}
}

func TestGenerateBOQ_SequentialItemNumbers(t *testing.T) {
	result := GenerateBOQ(steelPlateDrawing(), nil)

	for i, it := range result.Items {
		want := fmt.Sprintf("%d.0", i+1)
		if it.ItemNumber != want {
			t.Errorf("item %d number = %s, want %s", i, it.ItemNumber, want)
		}
	}
}

func TestGenerateBOQ_ProfitMarginDoesNotAffectTotals(t *testing.T) {
	base := DefaultOptions()
	raised := DefaultOptions()
	raised.ProfitMargin = 90

	a := GenerateBOQ(steelPlateDrawing(), &base)
	b := GenerateBOQ(steelPlateDrawing(), &raised)

	if a.Summary != b.Summary {
		t.Errorf("summaries differ with changed profit margin: %+v vs %+v", a.Summary, b.Summary)
	}
}

func TestClassifyComplexity(t *testing.T) {
	tests := []struct {
		name   string
		data   CADBOQData
		expect string
	}{
		{"empty drawing", CADBOQData{}, ComplexityLow},
		{"score 4 is Low", CADBOQData{Blocks: make([]CADBlock, 4)}, ComplexityLow},
		{"score 5 is Medium", CADBOQData{Blocks: make([]CADBlock, 5)}, ComplexityMedium},
		{"score 10 is High", CADBOQData{Blocks: make([]CADBlock, 10)}, ComplexityHigh},
		{"score 15 is Critical", CADBOQData{Blocks: make([]CADBlock, 15)}, ComplexityCritical},
		{"large area alone stays Low", CADBOQData{TotalArea: 60}, ComplexityLow},
		{
			"materials plus area and volume",
			CADBOQData{
				Materials:   make([]CADMaterial, 5),
				TotalArea:   25,
				TotalVolume: 3,
			},
			ComplexityHigh, // 10 + 2 + 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyComplexity(&tt.data); got != tt.expect {
				t.Errorf("ClassifyComplexity() = %s, want %s", got, tt.expect)
			}
		})
	}
}

func TestGenerateBOQ_ConfidenceBounds(t *testing.T) {
	empty := GenerateBOQ(&CADBOQData{}, nil)
	if empty.Metadata.Confidence != 50 {
		t.Errorf("empty drawing confidence = %d, want 50", empty.Metadata.Confidence)
	}

	full := &CADBOQData{
		Materials: []CADMaterial{
			{Name: "Steel Plate", Type: "steel", Quantity: 2, Unit: "ea"},
		},
		Dimensions: []CADDimension{{Type: "linear", Value: 6000, Unit: "mm"}},
		TotalArea:  10,
		DrawingInfo: DrawingInfo{
			Layers: []string{"0", "STEEL", "DIMENSIONS", "TITLE"},
		},
	}
	result := GenerateBOQ(full, nil)
	if result.Metadata.Confidence != 100 {
		t.Errorf("rich drawing confidence = %d, want 100", result.Metadata.Confidence)
	}
}

func TestMaterialDescription(t *testing.T) {
	tests := []struct {
		name     string
		material CADMaterial
		expect   string
	}{
		{
			"name only",
			CADMaterial{Name: "Steel Plate"},
			"Steel Plate",
		},
		{
			"with grade",
			CADMaterial{Name: "Steel Plate", Grade: "A36"},
			"Steel Plate - Grade A36",
		},
		{
			"with dimensions and thickness",
			CADMaterial{
				Name:       "Steel Plate",
				Grade:      "A36",
				Dimensions: &MaterialDimensions{Length: 2000, Width: 1000, Height: 10},
				Thickness:  10,
			},
			"Steel Plate - Grade A36 - 2000x1000x10 mm - 10 mm THK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := materialDescription(tt.material); got != tt.expect {
				t.Errorf("materialDescription() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestMaterialSpecifications(t *testing.T) {
	explicit := CADMaterial{Name: "Pipe", Specifications: "ASTM A53 Gr B"}
	if got := materialSpecifications(explicit); got != "ASTM A53 Gr B" {
		t.Errorf("explicit spec = %q, want passthrough", got)
	}

	bare := CADMaterial{Name: "Widget"}
	if got := materialSpecifications(bare); got != "As per drawing" {
		t.Errorf("bare spec = %q, want %q", got, "As per drawing")
	}

	graded := CADMaterial{Name: "Plate", Grade: "S355", Thickness: 8}
	if got := materialSpecifications(graded); got != "Grade S355, 8 mm thick" {
		t.Errorf("synthesized spec = %q", got)
	}
}
