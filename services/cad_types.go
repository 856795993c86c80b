// Package services implements the CAD-to-BOQ conversion pipeline: parsing
// DWG/DXF drawings into structured material data, generating priced bill of
// quantities line items, and exporting the result as CSV, Excel or PDF.
package services

// Point3D is a coordinate in drawing space (mm).
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MaterialDimensions holds the bounding dimensions of a material in mm.
type MaterialDimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CADMaterial is a material quantity extracted (or synthesized) from a drawing.
type CADMaterial struct {
	Name           string              `json:"name"`
	Type           string              `json:"type"` // steel, aluminum, copper, concrete, other
	Grade          string              `json:"grade,omitempty"`
	Thickness      float64             `json:"thickness,omitempty"` // mm, meaningful for steel only
	Dimensions     *MaterialDimensions `json:"dimensions,omitempty"`
	Quantity       float64             `json:"quantity"`
	Unit           string              `json:"unit"` // ea, m, kg, l, mm, mm², mm³ (case-insensitive on lookup)
	Specifications string              `json:"specifications,omitempty"`
}

// CADDimension is a linear measurement found in the drawing.
type CADDimension struct {
	Type       string  `json:"type"` // only "linear" is produced
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	StartPoint Point3D `json:"startPoint"`
	EndPoint   Point3D `json:"endPoint"`
	Text       string  `json:"text"`
	Layer      string  `json:"layer"`
}

// CADBlock is a named reusable drawing block, e.g. a title block.
type CADBlock struct {
	Name        string            `json:"name"`
	Entities    []string          `json:"entities,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	InsertPoint Point3D           `json:"insertPoint"`
	Scale       float64           `json:"scale"`
	Rotation    float64           `json:"rotation"`
}

// DrawingInfo carries drawing-level metadata.
type DrawingInfo struct {
	Title  string   `json:"title"`
	Scale  string   `json:"scale"`
	Units  string   `json:"units"`
	Layers []string `json:"layers"`
}

// CADBOQData is the parser's complete output. It is constructed once per
// parse call and never mutated afterwards.
type CADBOQData struct {
	Materials   []CADMaterial  `json:"materials"`
	Dimensions  []CADDimension `json:"dimensions"`
	Blocks      []CADBlock     `json:"blocks"`
	TotalArea   float64        `json:"totalArea"`   // m²
	TotalVolume float64        `json:"totalVolume"` // m³
	TotalLength float64        `json:"totalLength"` // m
	DrawingInfo DrawingInfo    `json:"drawingInfo"`
}
