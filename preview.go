package yololabelme

// Preview images of converted annotations.

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// PreviewOptions configures the optional overlay images written next to the LabelMe output.
type PreviewOptions struct {
	Dir         string // Output directory. Previews are disabled when empty.
	LongerSide  int    // Max. length of the longer image side; zero keeps the original size.
	Ext         string // ".jpg" or ".png".
	JPEGQuality int    // [1, 100]
}

// Enabled reports whether previews should be rendered.
func (o PreviewOptions) Enabled() bool {
	return o.Dir != ""
}

func (o PreviewOptions) withDefaults() PreviewOptions {
	if o.Ext == "" {
		o.Ext = ".jpg"
	} else if !strings.HasPrefix(o.Ext, ".") {
		o.Ext = "." + o.Ext
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		o.JPEGQuality = 90
	}
	return o
}

// renderPreview draws the shapes of doc onto the image at imagePath and saves the result as
// <opts.Dir>/<name><opts.Ext>. Returns the path of the written file.
func renderPreview(imagePath, name string, doc LabelMeDocument, opts PreviewOptions) (string, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(opts.Ext) {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", fmt.Errorf("unsupported preview encoding %q", opts.Ext)
	}

	img, err := loadImage(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to load %q: %w", imagePath, err)
	}
	img, scaleX, scaleY := resizeImage(img, opts.LongerSide, imaging.Box)

	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(2)
	for _, s := range doc.Shapes {
		if len(s.Points) == 0 {
			continue
		}
		r, g, b := labelColor(s.Label)
		dc.SetRGB(r, g, b)

		x0 := float64(s.Points[0][0]) * scaleX
		y0 := float64(s.Points[0][1]) * scaleY
		switch s.ShapeType {
		case Rectangle.String():
			if len(s.Points) != 2 {
				continue
			}
			x1 := float64(s.Points[1][0]) * scaleX
			y1 := float64(s.Points[1][1]) * scaleY
			dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		default:
			dc.MoveTo(x0, y0)
			for _, p := range s.Points[1:] {
				dc.LineTo(float64(p[0])*scaleX, float64(p[1])*scaleY)
			}
			dc.ClosePath()
		}
		dc.Stroke()
		dc.DrawString(s.Label, x0+2, y0-4)
	}

	outPath := filepath.Join(opts.Dir, name+opts.Ext)
	if err := saveImage(outPath, dc.Image(), opts.JPEGQuality); err != nil {
		return "", fmt.Errorf("cannot write preview %q: %w", outPath, err)
	}
	return outPath, nil
}

// labelColor picks a stable, saturated color for label.
func labelColor(label string) (r, g, b float64) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	v := h.Sum32()

	channel := func(shift uint) float64 {
		return 0.25 + 0.75*float64((v>>shift)&0xff)/255
	}
	return channel(0), channel(8), channel(16)
}
