package yololabelme

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseYOLOAnnotation(t *testing.T) {
	a, err := parseYOLOAnnotation("0 0.5 0.5 0.2 0.4")
	require.NoError(t, err)
	require.Equal(t, YOLOAnnotation{ClassID: 0, Kind: Rectangle, Values: []float64{0.5, 0.5, 0.2, 0.4}}, a)

	a, err = parseYOLOAnnotation("  2.0\t10 20 30 40 50 60  ")
	require.NoError(t, err)
	require.Equal(t, 2, a.ClassID)
	require.Equal(t, Polygon, a.Kind)
	require.Equal(t, []float64{10, 20, 30, 40, 50, 60}, a.Values)
}

func TestParseYOLOAnnotationMalformed(t *testing.T) {
	for _, line := range []string{
		"0 0.5 0.5",             // Too few tokens.
		"0 0.1 0.2 0.3 0.4 0.5", // Odd number of polygon coordinates.
		"0.5 0.5 0.5 0.2 0.2",   // Fractional class ID.
		"cat 0.5 0.5 0.2 0.2",   // Non-numeric class ID.
		"1 0.5 x 0.2 0.2",       // Non-numeric coordinate.
		"NaN 0.5 0.5 0.2 0.2",
		"0 inf 0.5 0.2 0.2",
		"0 NaN 0.5 0.2 0.2",
		"0 1 2 inf 4 5 6",
		"0 0.5 -Inf 0.2 0.2",
	} {
		_, err := parseYOLOAnnotation(line)
		require.ErrorIs(t, err, ErrMalformedLine, line)
	}
}

func TestParseYOLOAnnotationLargeClassID(t *testing.T) {
	for _, line := range []string{"3000000000 0.5 0.5 0.2 0.2", "-3e9 0.5 0.5 0.2 0.2"} {
		a, err := parseYOLOAnnotation(line)
		require.NoError(t, err, line)
		require.Equal(t, -1, a.ClassID, line)
	}
}

func TestRectanglePoints(t *testing.T) {
	for _, tc := range []struct {
		values []float64
		width  int
		height int
		want   [][2]int
	}{
		{[]float64{0.5, 0.5, 0.2, 0.4}, 1000, 1000, [][2]int{{400, 300}, {600, 700}}},
		// Truncation toward zero, no clamping.
		{[]float64{0, 0, 0.001, 0.2}, 1000, 100, [][2]int{{0, -10}, {0, 10}}},
		{[]float64{0, 0.005, 0.003, 0.001}, 1000, 100, [][2]int{{-1, 0}, {1, 0}}},
	} {
		p, err := rectanglePoints(tc.values, tc.width, tc.height)
		require.NoError(t, err)
		require.Equal(t, tc.want, p)
	}
}

func TestPointsOutOfRange(t *testing.T) {
	_, err := rectanglePoints([]float64{1e30, 0.5, 0.2, 0.2}, 100, 100)
	require.ErrorIs(t, err, ErrMalformedLine)
	_, err = rectanglePoints([]float64{0.5, 0.5, 0.2, 1e30}, 100, 100)
	require.ErrorIs(t, err, ErrMalformedLine)

	_, err = polygonPoints([]float64{1, 2, -1e30, 4}, 100, 100, false)
	require.ErrorIs(t, err, ErrMalformedLine)
	_, err = polygonPoints([]float64{1, 2, 3, 3e7}, 100, 100, true)
	require.ErrorIs(t, err, ErrMalformedLine)

	// The same values are fine unscaled.
	p, err := polygonPoints([]float64{1, 2, 3, 3e7}, 100, 100, false)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{1, 2}, {3, 30000000}}, p)
}

func TestRectanglePointsOrdered(t *testing.T) {
	sizes := [][2]int{{1, 1}, {640, 480}, {1920, 1080}, {333, 777}}
	for _, size := range sizes {
		for xc := -0.25; xc <= 1.25; xc += 0.125 {
			for bw := 0.0; bw <= 1.0; bw += 0.0625 {
				p, err := rectanglePoints([]float64{xc, 1 - xc, bw, 1 - bw}, size[0], size[1])
				require.NoError(t, err)
				require.LessOrEqual(t, p[0][0], p[1][0])
				require.LessOrEqual(t, p[0][1], p[1][1])
			}
		}
	}
}

func TestPolygonPoints(t *testing.T) {
	values := []float64{10.9, 20.1, 30.5, 40, 50, 60.99}
	p, err := polygonPoints(values, 100, 200, false)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{10, 20}, {30, 40}, {50, 60}}, p)

	normalised := []float64{0.1, 0.2, 0.5, 0.5, 0.9, 0.25}
	p, err = polygonPoints(normalised, 100, 200, true)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{10, 40}, {50, 100}, {90, 50}}, p)
}

func TestReadYOLOFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.txt")
	writeFile(t, path, "0 0.5 0.5 0.2 0.2\n\n1 2 3\n3 1 2 3 4 5 6\n0.5 0.1 0.1 0.1 0.1\n")

	f, lineErrs, err := readYOLOFile(path)
	require.NoError(t, err)
	require.Len(t, f.Annotations, 2)
	require.Equal(t, Rectangle, f.Annotations[0].Kind)
	require.Equal(t, Polygon, f.Annotations[1].Kind)
	require.Equal(t, 3, f.Annotations[1].ClassID)
	require.Equal(t, 2, f.Malformed)
	require.Len(t, lineErrs, 2)
	require.ErrorIs(t, lineErrs[0], ErrMalformedLine)
	require.Contains(t, lineErrs[0].Error(), "line 3")
}

func TestShapeKindString(t *testing.T) {
	require.Equal(t, "rectangle", Rectangle.String())
	require.Equal(t, "polygon", Polygon.String())
	require.Equal(t, "ShapeKind(7)", ShapeKind(7).String())
}
