package yololabelme

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is returned for annotation lines that cannot be turned into a shape. Such lines
// are skipped and never abort a conversion.
var ErrMalformedLine = errors.New("malformed annotation line")

// ImageError reports that the image belonging to an annotation file could not be found or decoded.
type ImageError struct {
	AnnotationPath string // The YOLO label file.
	ImagePath      string // The image location that was probed.
	Err            error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("cannot resolve image %q for %q: %v", e.ImagePath, e.AnnotationPath, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing or invalid startup option.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("option %q: %s", e.Option, e.Reason)
}
