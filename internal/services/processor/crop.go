package processor

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-crop/internal/models"
)

// cropImage never clamps: imaging.Crop intersects with the image bounds, so
// the region is validated first.
func (p *ImageProcessor) cropImage(img image.Image, req models.CropRequest) (image.Image, error) {
	bounds := img.Bounds()
	if err := ValidateRegion(bounds, req); err != nil {
		return nil, err
	}

	return imaging.Crop(img, req.Rect().Add(bounds.Min)), nil
}
