package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Complexity classes used to scale estimated labor and equipment hours.
const (
	ComplexityLow      = "Low"
	ComplexityMedium   = "Medium"
	ComplexityHigh     = "High"
	ComplexityCritical = "Critical"
)

// GenerateBOQ derives priced BOQ line items from parsed drawing data using
// the built-in rate tables. It is a pure function of its inputs aside from
// timestamps and never fails: a drawing with no materials simply yields
// fewer items. A nil opts uses DefaultOptions.
func GenerateBOQ(data *CADBOQData, opts *BOQGenerationOptions) *BOQGenerationResult {
	return GenerateBOQWithRates(data, opts, RateTable{})
}

// GenerateBOQWithRates is GenerateBOQ pricing materials through the given
// rate table, so stored rate overrides apply to the generated items.
func GenerateBOQWithRates(data *CADBOQData, opts *BOQGenerationOptions, rates RateTable) *BOQGenerationResult {
	start := time.Now()

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}

	var items []BOQItem
	itemNo := 0
	nextNumber := func() string {
		itemNo++
		return fmt.Sprintf("%d.0", itemNo)
	}

	for _, m := range data.Materials {
		rate := rates.MaterialRate(m)
		items = append(items, BOQItem{
			ID:             uuid.NewString(),
			ItemNumber:     nextNumber(),
			Description:    materialDescription(m),
			Quantity:       m.Quantity,
			Unit:           m.Unit,
			UnitRate:       rate,
			TotalAmount:    m.Quantity * rate,
			Category:       CategoryMaterial,
			Specifications: materialSpecifications(m),
		})
	}

	complexity := ClassifyComplexity(data)
	baseHours := data.TotalArea * 0.5 * complexityMultiplier(complexity)

	if o.IncludeLabor {
		laborLines := []struct {
			name     string
			share    float64
			rateMult float64
		}{
			{"Fabrication Labor", 0.6, 1.0},
			{"Welding Labor", 0.3, 1.2},
			{"Assembly Labor", 0.1, 1.0},
		}
		for _, l := range laborLines {
			hours := baseHours * l.share
			if hours <= 0 {
				continue
			}
			rate := o.LaborRate * l.rateMult
			items = append(items, BOQItem{
				ID:          uuid.NewString(),
				ItemNumber:  nextNumber(),
				Description: l.name,
				Quantity:    hours,
				Unit:        "HR",
				UnitRate:    rate,
				TotalAmount: hours * rate,
				Category:    CategoryLabor,
				Remarks:     complexity + " complexity",
			})
		}
	}

	if o.IncludeEquipment {
		equipmentLines := []struct {
			name     string
			share    float64
			rateMult float64
		}{
			{"Cutting Equipment", 0.4, 1.0},
			{"Welding Equipment", 0.3, 1.5},
			{"Lifting Equipment", 0.1, 2.0},
		}
		for _, eq := range equipmentLines {
			hours := baseHours * eq.share
			if hours <= 0 {
				continue
			}
			rate := o.EquipmentRate * eq.rateMult
			items = append(items, BOQItem{
				ID:          uuid.NewString(),
				ItemNumber:  nextNumber(),
				Description: eq.name,
				Quantity:    hours,
				Unit:        "HR",
				UnitRate:    rate,
				TotalAmount: hours * rate,
				Category:    CategoryEquipment,
				Remarks:     complexity + " complexity",
			})
		}
	}

	var materialCost, laborCost, equipmentCost float64
	for _, it := range items {
		switch it.Category {
		case CategoryMaterial:
			materialCost += it.TotalAmount
		case CategoryLabor:
			laborCost += it.TotalAmount
		case CategoryEquipment:
			equipmentCost += it.TotalAmount
		}
	}

	var overheadCost float64
	if o.IncludeOverhead {
		overheadCost = (materialCost + laborCost + equipmentCost) * o.OverheadPercentage / 100
		if overheadCost > 0 {
			items = append(items, BOQItem{
				ID:          uuid.NewString(),
				ItemNumber:  nextNumber(),
				Description: "Overhead & Miscellaneous",
				Quantity:    1,
				Unit:        "LS",
				UnitRate:    overheadCost,
				TotalAmount: overheadCost,
				Category:    CategoryOther,
				Remarks:     fmt.Sprintf("%.0f%% of direct costs", o.OverheadPercentage),
			})
		}
	}

	confidence := 50
	if len(data.Materials) > 0 {
		confidence += 20
	}
	if len(data.DrawingInfo.Layers) > 3 {
		confidence += 10
	}
	if len(data.Dimensions) > 0 {
		confidence += 10
	}
	if len(items) > 5 {
		confidence += 10
	}
	if confidence > 100 {
		confidence = 100
	}

	return &BOQGenerationResult{
		Items: items,
		Summary: BOQSummary{
			MaterialCost:  materialCost,
			LaborCost:     laborCost,
			EquipmentCost: equipmentCost,
			OverheadCost:  overheadCost,
			TotalCost:     materialCost + laborCost + equipmentCost + overheadCost,
			ItemCount:     len(items),
		},
		Metadata: BOQMetadata{
			SourceFile:     data.DrawingInfo.Title,
			GeneratedAt:    time.Now(),
			ProcessingMS:   time.Since(start).Milliseconds(),
			Confidence:     confidence,
			ComplexityName: complexity,
		},
	}
}

// ClassifyComplexity buckets a drawing into Low/Medium/High/Critical from a
// weighted score: 2 per material, tiered bonuses on total area and volume,
// 1 per block.
func ClassifyComplexity(data *CADBOQData) string {
	score := 2 * len(data.Materials)

	switch {
	case data.TotalArea > 50:
		score += 3
	case data.TotalArea > 20:
		score += 2
	case data.TotalArea > 5:
		score += 1
	}

	switch {
	case data.TotalVolume > 10:
		score += 3
	case data.TotalVolume > 5:
		score += 2
	case data.TotalVolume > 1:
		score += 1
	}

	score += len(data.Blocks)

	switch {
	case score >= 15:
		return ComplexityCritical
	case score >= 10:
		return ComplexityHigh
	case score >= 5:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

func complexityMultiplier(complexity string) float64 {
	switch complexity {
	case ComplexityMedium:
		return 1.5
	case ComplexityHigh:
		return 2.0
	case ComplexityCritical:
		return 3.0
	default:
		return 1.0
	}
}

// materialDescription builds the line item description from the material's
// name, grade, dimensions and thickness.
func materialDescription(m CADMaterial) string {
	desc := m.Name
	if m.Grade != "" {
		desc += " - Grade " + m.Grade
	}
	if m.Dimensions != nil {
		desc += fmt.Sprintf(" - %gx%gx%g mm", m.Dimensions.Length, m.Dimensions.Width, m.Dimensions.Height)
	}
	if m.Thickness > 0 {
		desc += fmt.Sprintf(" - %g mm THK", m.Thickness)
	}
	return desc
}

// materialSpecifications returns the material's spec string, synthesizing
// one from grade/dimensions/thickness when the material carries none.
func materialSpecifications(m CADMaterial) string {
	if m.Specifications != "" {
		return m.Specifications
	}

	var parts []string
	if m.Grade != "" {
		parts = append(parts, "Grade "+m.Grade)
	}
	if m.Dimensions != nil {
		parts = append(parts, fmt.Sprintf("%gx%gx%g mm", m.Dimensions.Length, m.Dimensions.Width, m.Dimensions.Height))
	}
	if m.Thickness > 0 {
		parts = append(parts, fmt.Sprintf("%g mm thick", m.Thickness))
	}
	if len(parts) == 0 {
		return "As per drawing"
	}
	return strings.Join(parts, ", ")
}
