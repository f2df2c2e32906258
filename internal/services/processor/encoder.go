package processor

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

func (p *ImageProcessor) encodeImage(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
