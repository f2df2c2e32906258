package processor

import (
	"fmt"
	"image"

	"github.com/phambaophuc/image-crop/internal/models"
)

// validateSource checks the pixel budget and the crop region against the
// dimensions in the image header, before the pixel data is decoded.
func (p *ImageProcessor) validateSource(data []byte, req models.CropRequest) (string, error) {
	cfg, format, err := p.decodeConfig(data)
	if err != nil {
		return "", err
	}

	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.maxPixels {
		return "", fmt.Errorf("%w: %dx%d is %d pixels, limit %d",
			ErrPixelLimit, cfg.Width, cfg.Height, pixels, p.maxPixels)
	}

	if err := ValidateRegion(image.Rect(0, 0, cfg.Width, cfg.Height), req); err != nil {
		return "", err
	}
	return format, nil
}

// ValidateRegion fails unless req lies entirely inside bounds and has a
// positive area. Coordinates in req are relative to bounds.Min.
func ValidateRegion(bounds image.Rectangle, req models.CropRequest) error {
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%w: empty region %s", ErrOutOfBounds, req)
	}

	region := req.Rect().Add(bounds.Min)
	// image.Rect canonicalises overflowed corners, so compare the size too.
	if region.Dx() != req.Width || region.Dy() != req.Height || !region.In(bounds) {
		return fmt.Errorf("%w: region %v, image %v", ErrOutOfBounds, region, bounds)
	}
	return nil
}
