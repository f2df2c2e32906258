package models

import (
	"fmt"
	"image"
)

// CropRequest is the rectangle extracted from the uploaded image.
// X and Y are not range-checked here; the processor rejects offsets that
// fall outside the source image.
type CropRequest struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

func (r CropRequest) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r CropRequest) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
