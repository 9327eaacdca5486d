package yololabelme

import (
	"fmt"
	"os"

	"github.com/cyclopcam/logs"
	"gopkg.in/yaml.v2"
)

// Config holds the startup options of a conversion run.
type Config struct {
	YOLODir     string `yaml:"yolo"`       // The YOLO label directory.
	LabelMeDir  string `yaml:"labelme"`    // The LabelMe output directory.
	ClassesPath string `yaml:"classes"`    // The class names file.
	ImageExt    string `yaml:"img_ext"`    // The image file extension.
	PrefixDir   string `yaml:"prefix_dir"` // Optional directory in the LabelMe image path.
	Version     string `yaml:"version"`    // The LabelMe format version.

	// Width and Height are accepted for compatibility and never used; image sizes are always read
	// from the images.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	NormalizedPolygons bool `yaml:"normalized_polygons"`
	SkipMissingImages  bool `yaml:"skip_missing_images"`

	PreviewDir  string `yaml:"preview_dir"`
	PreviewSize int    `yaml:"preview_size"`
}

// DefaultConfig returns the configuration with default values.
func DefaultConfig() Config {
	return Config{
		LabelMeDir: "results",
		ImageExt:   ".jpg",
		Version:    DefaultLabelMeVersion,
		Width:      1920,
		Height:     1024,
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the required options are present.
func (c Config) Validate() error {
	if c.YOLODir == "" {
		return &ConfigError{Option: "yolo", Reason: "the YOLO label directory is required"}
	}
	if c.ClassesPath == "" {
		return &ConfigError{Option: "classes", Reason: "the classes file is required"}
	}
	if c.LabelMeDir == "" {
		return &ConfigError{Option: "labelme", Reason: "the output directory must not be empty"}
	}
	if c.PreviewSize < 0 {
		return &ConfigError{Option: "preview_size", Reason: "must not be negative"}
	}
	return nil
}

// NewConverter returns a Converter configured from c.
func (c Config) NewConverter(log logs.Log, classes ClassMapping) *Converter {
	conv := NewConverter(log, classes)
	conv.ImageExt = c.ImageExt
	conv.PrefixDir = c.PrefixDir
	conv.Version = c.Version
	conv.DenormalizePolygons = c.NormalizedPolygons
	conv.SkipMissingImages = c.SkipMissingImages
	conv.Preview = PreviewOptions{Dir: c.PreviewDir, LongerSide: c.PreviewSize}
	return conv
}
