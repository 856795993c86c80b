package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned when the uploaded file is neither a DWG
// nor a DXF. This is the parser's only hard error: content-level failures
// degrade to synthetic data instead.
var ErrUnsupportedFormat = errors.New("unsupported CAD format: expected .dwg or .dxf")

// dwgDecodeDelay stands in for real DWG decoding latency. DWG is a binary
// format we do not decode; the DWG path synthesizes deterministic data from
// the file name instead (see SyntheticCADData).
const dwgDecodeDelay = 150 * time.Millisecond

// ParseCADFile dispatches on the file extension and returns the structured
// drawing data. The extension check happens before any content is read.
// Malformed DXF content never fails: it falls back to the keyword-driven
// synthetic generator so the caller always gets a usable drawing. The only
// quality signal for degraded output is the confidence score computed by
// the BOQ generator downstream.
func ParseCADFile(ctx context.Context, fileName string, r io.Reader) (*CADBOQData, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "dwg":
		return parseDWG(ctx, fileName)
	case "dxf":
		data, err := parseDXF(fileName, r)
		if err != nil {
			return SyntheticCADData(fileName), nil
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedFormat, ext)
	}
}

// parseDWG waits out the simulated decode latency and synthesizes a drawing
// from file name keywords. The context lets callers abandon the wait.
func parseDWG(ctx context.Context, fileName string) (*CADBOQData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(dwgDecodeDelay):
	}
	return SyntheticCADData(fileName), nil
}

// dxfEntity accumulates the group-code values of one entity during the scan.
// Only the last-seen coordinate of each axis is kept.
type dxfEntity struct {
	kind     string
	layer    string
	color    int
	lineType string
	x, y, z  float64
	radius   float64
	text     string
}

type dxfBlock struct {
	name string
	x, y float64
}

// dxfEntityKinds is the set of entity type tokens the scanner accumulates.
var dxfEntityKinds = map[string]bool{
	"LINE":       true,
	"CIRCLE":     true,
	"ARC":        true,
	"POLYLINE":   true,
	"LWPOLYLINE": true,
	"TEXT":       true,
	"DIMENSION":  true,
}

// parseDXF performs a single forward scan over the DXF group code/value
// pairs. A "0" group code marks an entity boundary: the just-completed
// entity or block is flushed and, if the type token is recognized, a new
// one starts accumulating.
func parseDXF(fileName string, r io.Reader) (data *CADBOQData, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("dxf scan: %v", rec)
		}
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dxf: %w", err)
	}

	var (
		entities []dxfEntity
		blocks   []dxfBlock
		cur      *dxfEntity
		curBlock *dxfBlock
	)

	flush := func() {
		if cur != nil {
			entities = append(entities, *cur)
			cur = nil
		}
		if curBlock != nil {
			blocks = append(blocks, *curBlock)
			curBlock = nil
		}
	}

	for i := 0; i+1 < len(lines); i += 2 {
		code, value := lines[i], lines[i+1]

		if code == "0" {
			flush()
			switch {
			case dxfEntityKinds[value]:
				cur = &dxfEntity{kind: value}
			case value == "BLOCK":
				curBlock = &dxfBlock{}
			}
			continue
		}

		switch {
		case cur != nil:
			switch code {
			case "8":
				cur.layer = value
			case "62":
				cur.color, _ = strconv.Atoi(value)
			case "6":
				cur.lineType = value
			case "10":
				cur.x = parseDXFFloat(value)
			case "20":
				cur.y = parseDXFFloat(value)
			case "30":
				cur.z = parseDXFFloat(value)
			case "40":
				cur.radius = parseDXFFloat(value)
			case "1":
				cur.text = value
			}
		case curBlock != nil:
			switch code {
			case "2":
				curBlock.name = value
			case "10":
				curBlock.x = parseDXFFloat(value)
			case "20":
				curBlock.y = parseDXFFloat(value)
			}
		}
	}
	flush()

	return deriveCADData(fileName, entities, blocks), nil
}

func parseDXFFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// deriveCADData turns the scanned entities into materials, dimensions and
// aggregate totals.
//
// The polyline "length" is the Euclidean norm of the last-seen (x, y) pair,
// not an accumulated segment length. Estimates derived from it inherit that
// simplification.
func deriveCADData(fileName string, entities []dxfEntity, blocks []dxfBlock) *CADBOQData {
	merged := make(map[string]*CADMaterial)
	var order []string

	var dims []CADDimension
	var layerSet = make(map[string]bool)
	var layers []string

	var totalAreaMM2, totalLengthMM float64

	addMaterial := func(name, typ, grade, unit string, qty float64) {
		key := name + "|" + typ
		if m, ok := merged[key]; ok {
			m.Quantity += qty
			return
		}
		merged[key] = &CADMaterial{Name: name, Type: typ, Grade: grade, Quantity: qty, Unit: unit}
		order = append(order, key)
	}

	for _, e := range entities {
		if e.layer != "" && !layerSet[e.layer] {
			layerSet[e.layer] = true
			layers = append(layers, e.layer)
		}

		switch e.kind {
		case "LWPOLYLINE", "POLYLINE":
			length := math.Hypot(e.x, e.y)
			if length <= 0 {
				continue
			}
			totalLengthMM += length
			if name, typ, grade, ok := materialForLayer(e.layer); ok {
				addMaterial(name, typ, grade, "m", length/1000)
			}
		case "LINE":
			totalLengthMM += math.Hypot(e.x, e.y)
		case "CIRCLE":
			area := math.Pi * e.radius * e.radius
			if area <= 0 {
				continue
			}
			totalAreaMM2 += area
			if name, typ, grade, ok := materialForLayer(e.layer); ok {
				addMaterial(name, typ, grade, "mm²", area)
			}
		case "DIMENSION":
			v, err := strconv.ParseFloat(strings.TrimSpace(e.text), 64)
			if err != nil {
				continue
			}
			dims = append(dims, CADDimension{
				Type:     "linear",
				Value:    v,
				Unit:     "mm",
				EndPoint: Point3D{X: e.x, Y: e.y, Z: e.z},
				Text:     e.text,
				Layer:    e.layer,
			})
		}
	}

	materials := make([]CADMaterial, 0, len(order))
	for _, key := range order {
		materials = append(materials, *merged[key])
	}

	cadBlocks := make([]CADBlock, 0, len(blocks))
	for _, b := range blocks {
		cadBlocks = append(cadBlocks, CADBlock{
			Name:        b.name,
			Attributes:  map[string]string{},
			InsertPoint: Point3D{X: b.x, Y: b.y},
			Scale:       1,
		})
	}

	totalArea := totalAreaMM2 / 1e6
	return &CADBOQData{
		Materials:   materials,
		Dimensions:  dims,
		Blocks:      cadBlocks,
		TotalArea:   totalArea,
		TotalLength: totalLengthMM / 1000,
		// Volume assumes a nominal 100mm section depth over the traced area.
		TotalVolume: totalArea * 100,
		DrawingInfo: DrawingInfo{
			Title:  baseName(fileName),
			Scale:  "1:1",
			Units:  "mm",
			Layers: layers,
		},
	}
}

// materialForLayer identifies a material from the entity's layer name via
// substring match. Layers that match nothing produce no material.
func materialForLayer(layer string) (name, typ, grade string, ok bool) {
	l := strings.ToLower(layer)
	switch {
	case strings.Contains(l, "steel") || strings.Contains(l, "structural"):
		return "Structural Steel", "steel", "A36", true
	case strings.Contains(l, "concrete"):
		return "Concrete", "concrete", "C25", true
	case strings.Contains(l, "aluminum"):
		return "Aluminum", "aluminum", "6061-T6", true
	case strings.Contains(l, "copper"):
		return "Copper", "copper", "C110", true
	}
	return "", "", "", false
}

func baseName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
