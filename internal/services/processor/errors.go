package processor

import "errors"

var (
	ErrEmptyImage  = errors.New("empty image data")
	ErrDecode      = errors.New("failed to decode image")
	ErrOutOfBounds = errors.New("crop region outside image bounds")
	ErrPixelLimit  = errors.New("image exceeds pixel limit")
	ErrEncode      = errors.New("failed to encode image")
)
