package yololabelme

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageSize opens the file at path and returns the pixel width and height from its header. The
// pixel data is not decoded.
func imageSize(path string) (width, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer closeWithErrCheck(file, &err)

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}

	return config.Width, config.Height, nil
}

// loadImage reads and decodes the image at path. EXIF orientation is ignored so that the pixel
// grid matches the one the annotations were made on.
func loadImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

// saveImage encodes img to path, using the format implied by the file extension of path.
func saveImage(path string, img image.Image, jpegQuality int) error {
	return imaging.Save(img, path, imaging.JPEGQuality(jpegQuality))
}

// resizeImage resamples the image so that its longer side is at most longerSide, keeping the
// aspect ratio. Images that are already small enough are returned as they are.
//
// Returns the resized image along with the width and height scale factors.
func resizeImage(img image.Image, longerSide int, filter imaging.ResampleFilter) (
	resized image.Image, scaleWidth, scaleHeight float64) {

	imgBounds := img.Bounds()
	imgWidth := imgBounds.Dx()
	imgHeight := imgBounds.Dy()

	imgLonger := imgWidth
	imgShorter := imgHeight
	isLandscape := true
	if imgHeight > imgWidth {
		imgLonger = imgHeight
		imgShorter = imgWidth
		isLandscape = false
	}
	if longerSide <= 0 || imgLonger <= longerSide || imgShorter == 0 {
		return img, 1, 1
	}

	// Calculate the target dimensions.
	shorterSide := int(math.Round(float64(longerSide) * (float64(imgShorter) / float64(imgLonger))))
	if shorterSide < 1 {
		shorterSide = 1
	}

	if isLandscape {
		resized = imaging.Resize(img, longerSide, shorterSide, filter)
		scaleWidth = float64(longerSide) / float64(imgLonger)
		scaleHeight = float64(shorterSide) / float64(imgShorter)
	} else { // Portrait.
		resized = imaging.Resize(img, shorterSide, longerSide, filter)
		scaleWidth = float64(shorterSide) / float64(imgShorter)
		scaleHeight = float64(longerSide) / float64(imgLonger)
	}

	return resized, scaleWidth, scaleHeight
}
