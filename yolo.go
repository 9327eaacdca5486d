package yololabelme

// YOLO specific functionality.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ShapeKind is the geometry type of an annotation.
type ShapeKind int

// The supported shape kinds.
const (
	Rectangle ShapeKind = iota // x_center, y_center, width, height
	Polygon                    // x1, y1, x2, y2, ...
)

// String returns the LabelMe shape_type for k.
func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Polygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// YOLOAnnotation is a single annotation line within a YOLO label file.
type YOLOAnnotation struct {
	ClassID int
	Kind    ShapeKind
	Values  []float64 // The coordinate values following the class ID.
}

// YOLOAnnotatedFile defines the YOLO annotation structure for a single label file.
type YOLOAnnotatedFile struct {
	Annotations []YOLOAnnotation
	FilePath    string
	Malformed   int // The number of skipped lines that were not blank.
}

// readYOLOFile parses all annotation lines in the label file at path. Malformed lines are skipped
// and counted, blank lines are ignored.
func readYOLOFile(path string) (YOLOAnnotatedFile, []error, error) {
	lines, err := readLines(path)
	if err != nil {
		return YOLOAnnotatedFile{}, nil, err
	}

	var lineErrs []error
	f := YOLOAnnotatedFile{
		Annotations: make([]YOLOAnnotation, 0, len(lines)),
		FilePath:    path,
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := parseYOLOAnnotation(line)
		if err != nil {
			f.Malformed++
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		f.Annotations = append(f.Annotations, a)
	}

	return f, lineErrs, nil
}

// parseYOLOAnnotation parses the whitespace-separated values for a single annotation.
//
// Five tokens are a bounding box, more are a polygon with an even number of coordinates. Errors
// wrap ErrMalformedLine.
func parseYOLOAnnotation(line string) (YOLOAnnotation, error) {
	a := YOLOAnnotation{}

	tokens := strings.Fields(line)
	switch {
	case len(tokens) < 5:
		return a, fmt.Errorf("%w: insufficient tokens in %q", ErrMalformedLine, line)
	case len(tokens) == 5:
		a.Kind = Rectangle
	case (len(tokens)-1)%2 != 0:
		return a, fmt.Errorf("%w: odd number of polygon coordinates in %q", ErrMalformedLine, line)
	default:
		a.Kind = Polygon
	}

	id, err := parseClassID(tokens[0])
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	a.ClassID = id

	a.Values = make([]float64, len(tokens)-1)
	for i, tok := range tokens[1:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return a, fmt.Errorf("%w: unexpected values in %q: %v", ErrMalformedLine, line, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, fmt.Errorf("%w: non-finite value %q in %q", ErrMalformedLine, tok, line)
		}
		a.Values[i] = v
	}

	return a, nil
}

// parseClassID parses a class ID written as a number, e.g. "3" or "3.0". Fractional and
// non-finite values are rejected. Integral IDs too large for any mapping are returned as -1.
func parseClassID(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid class id %q: %v", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("invalid class id %q: not an integer", s)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return -1, nil
	}
	return int(v), nil
}

// pixel truncates v toward zero. Values outside the int32 range are rejected, as the conversion
// of out of range floats to int is not defined.
func pixel(v float64) (int, error) {
	if math.IsNaN(v) || v >= math.MaxInt32+1 || v <= math.MinInt32-1 {
		return 0, fmt.Errorf("%w: coordinate %g out of range", ErrMalformedLine, v)
	}
	return int(v), nil
}

// rectanglePoints converts a normalised YOLO bounding box to absolute top-left and bottom-right
// corners for an image of the given size. Values are truncated toward zero and not clamped.
func rectanglePoints(values []float64, width, height int) ([][2]int, error) {
	w, h := float64(width), float64(height)
	xc, yc, bw, bh := values[0], values[1], values[2], values[3]

	var corners [4]int
	for i, v := range []float64{
		xc*w - (bw*w)/2,
		yc*h - (bh*h)/2,
		xc*w + (bw*w)/2,
		yc*h + (bh*h)/2,
	} {
		p, err := pixel(v)
		if err != nil {
			return nil, err
		}
		corners[i] = p
	}

	return [][2]int{{corners[0], corners[1]}, {corners[2], corners[3]}}, nil
}

// polygonPoints converts flattened polygon coordinates to points, truncated toward zero. The
// values are taken as pixel coordinates unless denormalise is set, in which case they are scaled
// by the image size first.
func polygonPoints(values []float64, width, height int, denormalise bool) ([][2]int, error) {
	sx, sy := 1.0, 1.0
	if denormalise {
		sx, sy = float64(width), float64(height)
	}

	points := make([][2]int, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		x, err := pixel(values[i] * sx)
		if err != nil {
			return nil, err
		}
		y, err := pixel(values[i+1] * sy)
		if err != nil {
			return nil, err
		}
		points = append(points, [2]int{x, y})
	}
	return points, nil
}
