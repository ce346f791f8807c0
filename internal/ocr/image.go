package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ppiankov/plainspeak/internal/model"
)

// DefaultMaxPixels bounds decoded image area when no limit is configured (40 megapixels)
const DefaultMaxPixels int64 = 40_000_000

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes and applies any
// EXIF orientation so the returned image is upright. Images whose declared
// area exceeds maxPixels are rejected before any pixel data is decoded;
// maxPixels <= 0 means DefaultMaxPixels.
func DecodeImage(data []byte, maxPixels int64) (image.Image, model.ImageSize, error) {
	if len(data) == 0 {
		return nil, model.ImageSize{}, model.InputError("no image provided")
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, model.ImageSize{}, fmt.Errorf("%w: decode image: %v", model.ErrInput, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, model.ImageSize{}, model.InputError(fmt.Sprintf("image is %dx%d, limit is %d pixels", cfg.Width, cfg.Height, maxPixels))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, model.ImageSize{}, fmt.Errorf("%w: decode image: %v", model.ErrInput, err)
	}

	img = Orient(img, Orientation(data))

	b := img.Bounds()
	return img, model.ImageSize{W: b.Dx(), H: b.Dy()}, nil
}
