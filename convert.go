package yololabelme

// YOLO to LabelMe conversion.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/logs"
)

// yoloLabelExt is the file suffix of YOLO label files.
const yoloLabelExt = ".txt"

// Converter converts a directory of YOLO label files to LabelMe documents.
type Converter struct {
	Classes   ClassMapping
	ImageExt  string // The image file extension, e.g. ".jpg". A missing dot is added.
	PrefixDir string // Optional directory between ".." and the image file name; used as is when absolute.
	Version   string // The LabelMe format version written to each document.

	// DenormalizePolygons scales polygon vertices by the image size. When false, polygon values
	// are copied through as pixel coordinates.
	DenormalizePolygons bool

	// SkipMissingImages logs and skips label files whose image cannot be read, instead of
	// aborting the conversion.
	SkipMissingImages bool

	Preview PreviewOptions

	log logs.Log
}

// Stats summarises a conversion run.
type Stats struct {
	Files          int // Label files written.
	SkippedFiles   int // Label files skipped because of a missing or unreadable image.
	Shapes         int // Shapes written.
	MalformedLines int // Annotation lines skipped as malformed.
	UnknownClasses int // Shapes labelled UnknownLabel.
	Previews       int // Preview images written.
}

// NewConverter returns a Converter with the default image extension and LabelMe version.
func NewConverter(log logs.Log, classes ClassMapping) *Converter {
	return &Converter{
		Classes:  classes,
		ImageExt: ".jpg",
		Version:  DefaultLabelMeVersion,
		log:      log,
	}
}

// ConvertYOLOToLabelMe converts all YOLO label files in yoloDir to LabelMe documents in
// labelMeDir. The image for "name.txt" is expected at yoloDir/../prefixDir/name<imageExt>.
//
// The first image that cannot be read aborts the conversion. Polygon values are copied through
// without scaling.
func ConvertYOLOToLabelMe(yoloDir, labelMeDir string, classes ClassMapping,
	imageExt, prefixDir, version string) error {

	log, err := logs.NewLog()
	if err != nil {
		return err
	}
	c := NewConverter(log, classes)
	c.ImageExt = imageExt
	c.PrefixDir = prefixDir
	c.Version = version
	_, err = c.Convert(yoloDir, labelMeDir)
	return err
}

// Convert converts every ".txt" file directly in yoloDir, in file name order, and writes one
// "<name>.json" per file to labelMeDir, which is created if necessary.
//
// The returned Stats are valid up to the point of failure when an error is returned.
func (c *Converter) Convert(yoloDir, labelMeDir string) (Stats, error) {
	var stats Stats

	labelFiles, err := filesByExtInDir(yoloDir, yoloLabelExt)
	if err != nil {
		return stats, err
	}
	if err := os.MkdirAll(labelMeDir, 0755); err != nil {
		return stats, fmt.Errorf("cannot create output directory %q: %w", labelMeDir, err)
	}
	if c.Preview.Enabled() {
		if err := os.MkdirAll(c.Preview.Dir, 0755); err != nil {
			return stats, fmt.Errorf("cannot create preview directory %q: %w", c.Preview.Dir, err)
		}
	}
	c.logger().Infof("Converting YOLO labels for %d files", len(labelFiles))

	for _, labelPath := range labelFiles {
		err := c.convertFile(yoloDir, labelMeDir, labelPath, &stats)
		var imgErr *ImageError
		if errors.As(err, &imgErr) && c.SkipMissingImages {
			c.logger().Warnf("Skipping %q: %v", labelPath, err)
			stats.SkippedFiles++
			continue
		}
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// convertFile converts the single label file at labelPath.
func (c *Converter) convertFile(yoloDir, labelMeDir, labelPath string, stats *Stats) error {
	name := strings.TrimSuffix(filepath.Base(labelPath), yoloLabelExt)

	yoloFile, lineErrs, err := readYOLOFile(labelPath)
	if err != nil {
		return err
	}
	for _, e := range lineErrs {
		c.logger().Debugf("Skipping annotation in %q: %v", labelPath, e)
	}

	imagePath, imageLocation := c.imagePaths(yoloDir, name)
	width, height, err := imageSize(imageLocation)
	if err != nil {
		return &ImageError{AnnotationPath: labelPath, ImagePath: imageLocation, Err: err}
	}

	doc := newLabelMeDocument(c.version(), imagePath, width, height)
	unknown, malformed := 0, yoloFile.Malformed
	for _, a := range yoloFile.Annotations {
		var points [][2]int
		var err error
		switch a.Kind {
		case Rectangle:
			points, err = rectanglePoints(a.Values, width, height)
		case Polygon:
			points, err = polygonPoints(a.Values, width, height, c.DenormalizePolygons)
		}
		if err != nil {
			c.logger().Debugf("Skipping annotation in %q: %v", labelPath, err)
			malformed++
			continue
		}

		label, ok := c.Classes.Lookup(a.ClassID)
		if !ok {
			unknown++
		}
		doc.addShape(label, a.Kind, points)
	}

	outPath := filepath.Join(labelMeDir, name+".json")
	if err := WriteLabelMe(outPath, doc); err != nil {
		return err
	}

	stats.Files++
	stats.Shapes += len(doc.Shapes)
	stats.MalformedLines += malformed
	stats.UnknownClasses += unknown

	if c.Preview.Enabled() {
		if _, err := renderPreview(imageLocation, name, doc, c.Preview); err != nil {
			return err
		}
		stats.Previews++
	}

	return nil
}

// imagePaths returns the image path written to the LabelMe document and the location it is read
// from. The path is relative to the LabelMe file, which is expected to be moved next to the label
// directory, unless PrefixDir is absolute.
func (c *Converter) imagePaths(yoloDir, name string) (imagePath, location string) {
	file := name + c.imageExt()
	if filepath.IsAbs(c.PrefixDir) {
		imagePath = filepath.Join(c.PrefixDir, file)
		return imagePath, imagePath
	}
	imagePath = filepath.Join("..", c.PrefixDir, file)
	return imagePath, filepath.Join(yoloDir, imagePath)
}

func (c *Converter) imageExt() string {
	if !strings.HasPrefix(c.ImageExt, ".") {
		return "." + c.ImageExt
	}
	return c.ImageExt
}

func (c *Converter) version() string {
	if c.Version == "" {
		return DefaultLabelMeVersion
	}
	return c.Version
}

func (c *Converter) logger() logs.Log {
	if c.log == nil {
		c.log, _ = logs.NewLog()
	}
	return c.log
}
