// Converts YOLO detection and segmentation labels to LabelMe JSON files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/sensorable/yololabelme"
)

const completionBanner = "-------------------------Conversion completed------------------------------"

// options holds the parsed command line. Zero values mean "not given on the command line".
type options struct {
	configPath string

	yoloDir     *string
	labelMeDir  *string
	classesPath *string
	imageExt    *string
	prefixDir   *string
	version     *string
	width       *int
	height      *int

	normalizedPolygons *bool
	skipMissingImages  *bool
	previewDir         *string
	previewSize        *int
}

func parseArgs(args []string) (options, error) {
	parser := argparse.NewParser(filepath.Base(args[0]), "Convert YOLO annotations to LabelMe JSON format.")

	opts := options{}
	configPath := parser.String("", "config", &argparse.Options{Help: "YAML file with default values for all options"})
	opts.yoloDir = parser.String("", "yolo", &argparse.Options{Help: "Path to the YOLO-annotation(TXT) directory (required)"})
	opts.labelMeDir = parser.String("", "labelme", &argparse.Options{Help: "Path to the LabelMe-output(JSON) directory (default: results)"})
	opts.classesPath = parser.String("", "classes", &argparse.Options{Help: "Path to the classes file (TXT format, required)"})
	opts.imageExt = parser.String("", "img_ext", &argparse.Options{Help: "Image file extension, e.g. .jpg or .png (default: .jpg)"})
	opts.prefixDir = parser.String("", "prefix_dir", &argparse.Options{Help: "Prefix directory for the image path in the LabelMe JSON files"})
	opts.version = parser.String("", "version", &argparse.Options{Help: "LabelMe version (default: " + yololabelme.DefaultLabelMeVersion + ")"})
	opts.width = parser.Int("", "width", &argparse.Options{Help: "Unused, image sizes are read from the images"})
	opts.height = parser.Int("", "height", &argparse.Options{Help: "Unused, image sizes are read from the images"})
	opts.normalizedPolygons = parser.Flag("", "normalized_polygons", &argparse.Options{Help: "Scale polygon coordinates by the image size"})
	opts.skipMissingImages = parser.Flag("", "skip_missing_images", &argparse.Options{Help: "Skip label files without a readable image instead of stopping"})
	opts.previewDir = parser.String("", "preview_dir", &argparse.Options{Help: "Write images with the converted shapes drawn on them to this directory"})
	opts.previewSize = parser.Int("", "preview_size", &argparse.Options{Help: "Max. length of the longer side of preview images (0 keeps the size)"})

	if err := parser.Parse(args); err != nil {
		return opts, fmt.Errorf("%s", parser.Usage(err))
	}
	opts.configPath = *configPath
	return opts, nil
}

// config merges the command line on top of the config file (if any) on top of the defaults.
func (o options) config() (yololabelme.Config, error) {
	cfg := yololabelme.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = yololabelme.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}

	setString := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}
	setString(&cfg.YOLODir, o.yoloDir)
	setString(&cfg.LabelMeDir, o.labelMeDir)
	setString(&cfg.ClassesPath, o.classesPath)
	setString(&cfg.ImageExt, o.imageExt)
	setString(&cfg.PrefixDir, o.prefixDir)
	setString(&cfg.Version, o.version)
	setString(&cfg.PreviewDir, o.previewDir)
	if o.width != nil && *o.width != 0 {
		cfg.Width = *o.width
	}
	if o.height != nil && *o.height != 0 {
		cfg.Height = *o.height
	}
	if o.previewSize != nil && *o.previewSize != 0 {
		cfg.PreviewSize = *o.previewSize
	}
	if o.normalizedPolygons != nil && *o.normalizedPolygons {
		cfg.NormalizedPolygons = true
	}
	if o.skipMissingImages != nil && *o.skipMissingImages {
		cfg.SkipMissingImages = true
	}

	return cfg, cfg.Validate()
}

func main() {
	logger, err := logs.NewLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts, err := parseArgs(os.Args)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	cfg, err := opts.config()
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}

	classes, err := yololabelme.LoadClassMapping(cfg.ClassesPath)
	if err != nil {
		logger.Errorf("Failed to load the class names: %v", err)
		os.Exit(1)
	}
	logger.Infof("Loaded %d class names from %v", len(classes), cfg.ClassesPath)

	conv := cfg.NewConverter(logger, classes)
	stats, err := conv.Convert(cfg.YOLODir, cfg.LabelMeDir)
	if err != nil {
		logger.Errorf("Conversion failed after %d files: %v", stats.Files, err)
		os.Exit(1)
	}

	logger.Infof("Wrote %d LabelMe files with %d shapes to %v", stats.Files, stats.Shapes, cfg.LabelMeDir)
	if stats.SkippedFiles > 0 {
		logger.Warnf("Skipped %d label files without a readable image", stats.SkippedFiles)
	}
	if stats.MalformedLines > 0 {
		logger.Warnf("Skipped %d malformed annotation lines", stats.MalformedLines)
	}
	if stats.UnknownClasses > 0 {
		logger.Warnf("Labelled %d shapes %q", stats.UnknownClasses, yololabelme.UnknownLabel)
	}
	if stats.Previews > 0 {
		logger.Infof("Wrote %d preview images to %v", stats.Previews, cfg.PreviewDir)
	}

	fmt.Println(completionBanner)
}
