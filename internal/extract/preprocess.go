package extract

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// targetLongEdge is the pixel size OCR works best at for document photos:
// low-resolution phone shots are upscaled until character strokes resolve,
// oversized photos are shrunk to bound recognition time.
const targetLongEdge = 1800

// preprocessImage normalizes a photographed document for OCR: grayscale,
// resize so the long edge is targetLongEdge, and a luminance histogram
// stretch so faint low-contrast print becomes legible. The result is a PNG
// sibling of the source; the caller owns its deletion.
func preprocessImage(srcPath string) (string, error) {
	src, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img := imaging.Grayscale(src)

	bounds := img.Bounds()
	if bounds.Dx() >= bounds.Dy() {
		img = imaging.Resize(img, targetLongEdge, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, targetLongEdge, imaging.Lanczos)
	}

	img = stretchContrast(img)

	processedPath := srcPath + "_processed.png"
	if err := imaging.Save(img, processedPath); err != nil {
		return "", fmt.Errorf("save processed image: %w", err)
	}
	return processedPath, nil
}

// stretchContrast remaps the observed luminance range onto the full 0..255
// scale. The image is already grayscale, so the red channel stands in for
// luminance.
func stretchContrast(img image.Image) *image.NRGBA {
	lo, hi := uint8(255), uint8(0)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R < lo {
				lo = c.R
			}
			if c.R > hi {
				hi = c.R
			}
		}
	}
	if hi <= lo {
		return imaging.Clone(img)
	}

	span := float64(hi) - float64(lo)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := uint8((float64(c.R) - float64(lo)) / span * 255.0)
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}
