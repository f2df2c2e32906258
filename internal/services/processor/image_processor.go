package processor

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phambaophuc/image-crop/internal/models"
)

const (
	DefaultTimeout = 15 * time.Second
	// DefaultMaxPixels caps width*height of a source image at 16383x16383.
	DefaultMaxPixels = 16383 * 16383
)

// Result is a PNG-encoded crop.
type Result struct {
	Data         []byte
	Width        int
	Height       int
	SourceFormat string
}

type ImageProcessor struct {
	timeout   time.Duration
	maxPixels int64
}

func NewImageProcessor(timeout time.Duration, maxPixels int64) *ImageProcessor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &ImageProcessor{timeout: timeout, maxPixels: maxPixels}
}

type outcome struct {
	result *Result
	err    error
}

// Crop decodes data, extracts req and re-encodes the region as PNG.
// The work is abandoned when ctx is done or the processor timeout elapses.
func (p *ImageProcessor) Crop(ctx context.Context, data []byte, req models.CropRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("crop %s aborted: %w", req, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		res, err := p.crop(data, req)
		done <- outcome{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("crop %s aborted: %w", req, ctx.Err())
	case out := <-done:
		return out.result, out.err
	}
}

func (p *ImageProcessor) crop(data []byte, req models.CropRequest) (*Result, error) {
	format, err := p.validateSource(data, req)
	if err != nil {
		return nil, err
	}

	img, err := p.decodeImage(data)
	if err != nil {
		return nil, err
	}

	cropped, err := p.cropImage(img, req)
	if err != nil {
		return nil, err
	}

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, cropped); err != nil {
		return nil, err
	}

	bounds := cropped.Bounds()
	return &Result{
		Data:         buffer.Bytes(),
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		SourceFormat: format,
	}, nil
}
