package yololabelme

import (
	"strings"
)

// UnknownLabel is used for class IDs without an entry in the ClassMapping.
const UnknownLabel = "unknown"

// ClassMapping maps zero-based YOLO class IDs (the slice index) to class names.
type ClassMapping []string

// LoadClassMapping reads the class names from the file at path, one per line. Line N names class
// ID N. Surrounding whitespace is stripped; empty lines and duplicate names are kept as they are.
func LoadClassMapping(path string) (ClassMapping, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	classes := make(ClassMapping, len(lines))
	for i, line := range lines {
		classes[i] = strings.TrimSpace(line)
	}

	return classes, nil
}

// Lookup returns the class name for id and whether the mapping has an entry for it. UnknownLabel
// is returned for IDs without an entry.
func (m ClassMapping) Lookup(id int) (string, bool) {
	if id < 0 || id >= len(m) {
		return UnknownLabel, false
	}
	return m[id], true
}
