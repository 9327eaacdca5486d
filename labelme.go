package yololabelme

// LabelMe specific functionality.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DefaultLabelMeVersion is the LabelMe format version written when none is configured.
const DefaultLabelMeVersion = "5.4.1"

// LabelMeShape is a single annotation within a LabelMe file.
type LabelMeShape struct {
	Label     string          `json:"label"`
	Points    [][2]int        `json:"points"`
	GroupID   *int            `json:"group_id"`
	ShapeType string          `json:"shape_type"`
	Flags     map[string]bool `json:"flags"` // Must not be nil as that becomes JSON null.
}

// LabelMeDocument defines the LabelMe annotation structure for a single image.
type LabelMeDocument struct {
	Version     string          `json:"version"`
	Flags       map[string]bool `json:"flags"`
	Shapes      []LabelMeShape  `json:"shapes"`
	ImagePath   string          `json:"imagePath"`
	ImageData   *string         `json:"imageData"` // Image data is never embedded.
	ImageHeight int             `json:"imageHeight"`
	ImageWidth  int             `json:"imageWidth"`
}

// newLabelMeDocument returns an empty document for an image of the given size.
func newLabelMeDocument(version, imagePath string, width, height int) LabelMeDocument {
	return LabelMeDocument{
		Version:     version,
		Flags:       map[string]bool{},
		Shapes:      []LabelMeShape{},
		ImagePath:   imagePath,
		ImageHeight: height,
		ImageWidth:  width,
	}
}

// addShape appends a shape with the given label and points.
func (d *LabelMeDocument) addShape(label string, kind ShapeKind, points [][2]int) {
	d.Shapes = append(d.Shapes, LabelMeShape{
		Label:     label,
		Points:    points,
		ShapeType: kind.String(),
		Flags:     map[string]bool{},
	})
}

// encodeLabelMe serialises doc with two space indentation. HTML characters are not escaped and no
// trailing newline is written.
func encodeLabelMe(doc LabelMeDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteLabelMe writes the LabelMe document to outFile.
func WriteLabelMe(outFile string, doc LabelMeDocument) error {
	enc, err := encodeLabelMe(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, enc, 0644); err != nil {
		return fmt.Errorf("cannot write file %q: %w", outFile, err)
	}
	return nil
}

// ReadLabelMe reads and parses the LabelMe document at path.
func ReadLabelMe(path string) (LabelMeDocument, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return LabelMeDocument{}, err
	}

	var doc LabelMeDocument
	if err := json.Unmarshal(enc, &doc); err != nil {
		return LabelMeDocument{}, fmt.Errorf("failed to parse LabelMe input from %q: %w", path, err)
	}
	return doc, nil
}
