package services

import (
	"strings"
)

// SyntheticCADData builds a deterministic drawing from file name keywords.
// It backs the DWG path (no binary decoding is performed) and is the
// degradation target for malformed DXF content and caller-imposed parse
// timeouts. Materials here are emitted as-is, without the (name, type)
// merging applied to real DXF extractions.
func SyntheticCADData(fileName string) *CADBOQData {
	base := strings.ToLower(baseName(fileName))

	var title string
	var materials []CADMaterial
	switch {
	case strings.Contains(base, "structural") || strings.Contains(base, "frame"):
		title = "Structural Frame Assembly"
		materials = structuralMaterials()
	case strings.Contains(base, "piping") || strings.Contains(base, "pipe"):
		title = "Piping Layout"
		materials = pipingMaterials()
	case strings.Contains(base, "tank") || strings.Contains(base, "vessel"):
		title = "Storage Tank"
		materials = tankMaterials()
	default:
		title = "General Fabrication"
		materials = genericMaterials()
	}
	materials = append(materials, commonMaterials()...)

	data := &CADBOQData{
		Materials:  materials,
		Dimensions: syntheticDimensions(),
		Blocks:     []CADBlock{titleBlock(title)},
		DrawingInfo: DrawingInfo{
			Title:  title,
			Scale:  "1:50",
			Units:  "mm",
			Layers: []string{"0", "STEEL", "DIMENSIONS", "TITLE"},
		},
	}

	// Aggregates from the synthesized material dimensions: length in meters,
	// area in m² for EA entries, volume from area at 100mm nominal thickness.
	for _, m := range data.Materials {
		if m.Dimensions == nil {
			continue
		}
		data.TotalLength += m.Dimensions.Length * m.Quantity / 1000
		if strings.EqualFold(m.Unit, "ea") {
			data.TotalArea += m.Dimensions.Length * m.Dimensions.Width * m.Quantity / 1e6
		}
	}
	data.TotalVolume = data.TotalArea * 0.1

	return data
}

func structuralMaterials() []CADMaterial {
	return []CADMaterial{
		{
			Name: "Structural Steel Beam H200x100", Type: "steel", Grade: "A36",
			Dimensions: &MaterialDimensions{Length: 6000, Width: 100, Height: 200},
			Quantity:   12, Unit: "EA",
			Specifications: "Hot rolled H-section, IS 2062",
		},
		{
			Name: "Structural Steel Column H250x250", Type: "steel", Grade: "A992",
			Dimensions: &MaterialDimensions{Length: 3500, Width: 250, Height: 250},
			Quantity:   8, Unit: "EA",
			Specifications: "Hot rolled H-section, IS 2062",
		},
		{
			Name: "Steel Base Plate 400x400", Type: "steel", Grade: "A36", Thickness: 20,
			Dimensions: &MaterialDimensions{Length: 400, Width: 400, Height: 20},
			Quantity:   8, Unit: "EA",
		},
	}
}

func pipingMaterials() []CADMaterial {
	return []CADMaterial{
		{
			Name: "Steel Pipe DN100 Sch40", Type: "steel", Grade: "A53",
			Dimensions: &MaterialDimensions{Length: 6000, Width: 114, Height: 114},
			Quantity:   20, Unit: "EA",
			Specifications: "Seamless carbon steel pipe",
		},
		{
			Name: "Steel Pipe DN50 Sch40", Type: "steel", Grade: "A53",
			Dimensions: &MaterialDimensions{Length: 6000, Width: 60, Height: 60},
			Quantity:   35, Unit: "EA",
			Specifications: "Seamless carbon steel pipe",
		},
		{
			Name: "Weld Neck Flange DN100", Type: "steel", Grade: "A105",
			Quantity: 40, Unit: "EA",
			Specifications: "Class 150, raised face",
		},
	}
}

func tankMaterials() []CADMaterial {
	return []CADMaterial{
		{
			Name: "Steel Plate 10mm Bottom Course", Type: "steel", Grade: "A36", Thickness: 10,
			Dimensions: &MaterialDimensions{Length: 2500, Width: 1250, Height: 10},
			Quantity:   16, Unit: "EA",
		},
		{
			Name: "Steel Plate 8mm Shell Course", Type: "steel", Grade: "A36", Thickness: 8,
			Dimensions: &MaterialDimensions{Length: 2500, Width: 1250, Height: 8},
			Quantity:   12, Unit: "EA",
		},
		{
			Name: "Steel Nozzle Neck DN150", Type: "steel", Grade: "A106",
			Quantity: 6, Unit: "EA",
			Specifications: "Sch80 seamless",
		},
	}
}

func genericMaterials() []CADMaterial {
	return []CADMaterial{
		{
			Name: "Steel Plate 6mm", Type: "steel", Grade: "A36", Thickness: 6,
			Dimensions: &MaterialDimensions{Length: 2000, Width: 1000, Height: 6},
			Quantity:   10, Unit: "EA",
		},
		{
			Name: "Structural Steel Angle L50x50x5", Type: "steel", Grade: "A36",
			Dimensions: &MaterialDimensions{Length: 6000, Width: 50, Height: 50},
			Quantity:   24, Unit: "EA",
		},
		{
			Name: "Steel Flat Bar 50x6", Type: "steel", Grade: "A36",
			Dimensions: &MaterialDimensions{Length: 6000, Width: 50, Height: 6},
			Quantity:   15, Unit: "EA",
		},
	}
}

// commonMaterials are consumables appended to every synthetic set.
func commonMaterials() []CADMaterial {
	return []CADMaterial{
		{Name: "Welding Electrodes E7018", Type: "steel", Grade: "E7018", Quantity: 25, Unit: "KG"},
		{Name: "Welding Electrodes E6013", Type: "steel", Grade: "E6013", Quantity: 10, Unit: "KG"},
		{Name: "Epoxy Zinc Primer", Type: "other", Grade: "Epoxy Primer", Quantity: 20, Unit: "L"},
		{Name: "Polyurethane Finish Paint", Type: "other", Grade: "Polyurethane", Quantity: 15, Unit: "L"},
	}
}

func syntheticDimensions() []CADDimension {
	return []CADDimension{
		{Type: "linear", Value: 6000, Unit: "mm", EndPoint: Point3D{X: 6000}, Text: "6000", Layer: "DIMENSIONS"},
		{Type: "linear", Value: 3500, Unit: "mm", EndPoint: Point3D{Y: 3500}, Text: "3500", Layer: "DIMENSIONS"},
		{Type: "linear", Value: 2500, Unit: "mm", EndPoint: Point3D{X: 2500}, Text: "2500", Layer: "DIMENSIONS"},
	}
}

func titleBlock(title string) CADBlock {
	return CADBlock{
		Name: "TITLE_BLOCK",
		Attributes: map[string]string{
			"title": title,
			"scale": "1:50",
			"units": "mm",
			"rev":   "0",
		},
		Scale: 1,
	}
}
