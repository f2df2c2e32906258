package processor

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Input formats beyond the gif/jpeg/png/bmp/tiff set imaging registers.
	_ "golang.org/x/image/webp"
)

func (p *ImageProcessor) decodeConfig(data []byte) (image.Config, string, error) {
	if len(data) == 0 {
		return image.Config{}, "", ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cfg, format, nil
}

func (p *ImageProcessor) decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
