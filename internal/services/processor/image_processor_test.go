package processor

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/phambaophuc/image-crop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// quadrantImage is red top-left, green top-right, blue bottom-left and
// white bottom-right.
func quadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCrop_Dimensions(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	data := encodePNG(t, quadrantImage(100, 100))

	tests := []struct {
		name string
		req  models.CropRequest
	}{
		{"inner square", models.CropRequest{X: 10, Y: 10, Width: 50, Height: 50}},
		{"full image", models.CropRequest{X: 0, Y: 0, Width: 100, Height: 100}},
		{"single pixel at far corner", models.CropRequest{X: 99, Y: 99, Width: 1, Height: 1}},
		{"wide strip", models.CropRequest{X: 0, Y: 40, Width: 100, Height: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := processor.Crop(context.Background(), data, tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.req.Width, res.Width)
			assert.Equal(t, tt.req.Height, res.Height)
			assert.Equal(t, "png", res.SourceFormat)

			decoded, err := png.Decode(bytes.NewReader(res.Data))
			require.NoError(t, err)
			assert.Equal(t, tt.req.Width, decoded.Bounds().Dx())
			assert.Equal(t, tt.req.Height, decoded.Bounds().Dy())
		})
	}
}

func TestCrop_Content(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	data := encodePNG(t, quadrantImage(100, 100))

	res, err := processor.Crop(context.Background(), data, models.CropRequest{X: 50, Y: 0, Width: 50, Height: 50})
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)

	r, g, b, _ := decoded.At(25, 25).RGBA()
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
}

func TestCrop_OutOfBounds(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	data := encodePNG(t, quadrantImage(100, 100))

	tests := []struct {
		name string
		req  models.CropRequest
	}{
		{"overflows bottom right", models.CropRequest{X: 90, Y: 90, Width: 50, Height: 50}},
		{"negative x", models.CropRequest{X: -1, Y: 0, Width: 10, Height: 10}},
		{"negative y", models.CropRequest{X: 0, Y: -5, Width: 10, Height: 10}},
		{"width too large", models.CropRequest{X: 0, Y: 0, Width: 101, Height: 10}},
		{"starts outside", models.CropRequest{X: 100, Y: 0, Width: 1, Height: 1}},
		{"integer overflow", models.CropRequest{X: int(^uint(0) >> 1), Y: 0, Width: 2, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := processor.Crop(context.Background(), data, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}

func TestCrop_InvalidData(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	req := models.CropRequest{Width: 1, Height: 1}

	_, err := processor.Crop(context.Background(), nil, req)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = processor.Crop(context.Background(), []byte("definitely not an image"), req)
	assert.ErrorIs(t, err, ErrDecode)

	truncated := encodePNG(t, quadrantImage(40, 40))
	_, err = processor.Crop(context.Background(), truncated[:len(truncated)/2], req)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCrop_OtherInputFormats(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	src := quadrantImage(64, 48)

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, src, &jpeg.Options{Quality: 90}))

	var bm bytes.Buffer
	require.NoError(t, bmp.Encode(&bm, src))

	var gf bytes.Buffer
	require.NoError(t, gif.Encode(&gf, src, nil))

	tests := []struct {
		format string
		data   []byte
	}{
		{"jpeg", jpg.Bytes()},
		{"bmp", bm.Bytes()},
		{"gif", gf.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res, err := processor.Crop(context.Background(), tt.data, models.CropRequest{X: 4, Y: 4, Width: 20, Height: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.format, res.SourceFormat)

			decoded, err := png.Decode(bytes.NewReader(res.Data))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 20, 10), decoded.Bounds())
		})
	}
}

// withPNGSize rewrites the IHDR dimensions of a PNG, leaving the pixel data
// untouched, so the header declares a size the body does not hold.
func withPNGSize(t *testing.T, data []byte, width, height uint32) []byte {
	t.Helper()
	require.Equal(t, "IHDR", string(data[12:16]))

	out := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(out[16:20], width)
	binary.BigEndian.PutUint32(out[20:24], height)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestCrop_PixelLimit(t *testing.T) {
	data := encodePNG(t, quadrantImage(100, 100))
	req := models.CropRequest{X: 0, Y: 0, Width: 1, Height: 1}

	t.Run("at limit", func(t *testing.T) {
		res, err := NewImageProcessor(time.Second, 100*100).Crop(context.Background(), data, req)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Width)
	})

	t.Run("one pixel over", func(t *testing.T) {
		_, err := NewImageProcessor(time.Second, 100*100-1).Crop(context.Background(), data, req)
		assert.ErrorIs(t, err, ErrPixelLimit)
	})

	t.Run("huge header is refused before decoding", func(t *testing.T) {
		huge := withPNGSize(t, data, 30000, 30000)
		_, err := NewImageProcessor(time.Second, DefaultMaxPixels).Crop(context.Background(), huge, req)
		assert.ErrorIs(t, err, ErrPixelLimit)
	})

	t.Run("pixel count beyond int32", func(t *testing.T) {
		huge := withPNGSize(t, data, 65535, 65535)
		_, err := NewImageProcessor(time.Second, DefaultMaxPixels).Crop(context.Background(), huge, req)
		assert.ErrorIs(t, err, ErrPixelLimit)
	})
}

func TestCrop_Deterministic(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	data := encodePNG(t, quadrantImage(100, 100))
	req := models.CropRequest{X: 10, Y: 10, Width: 50, Height: 50}

	first, err := processor.Crop(context.Background(), data, req)
	require.NoError(t, err)
	second, err := processor.Crop(context.Background(), data, req)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestCrop_CancelledContext(t *testing.T) {
	processor := NewImageProcessor(time.Second, DefaultMaxPixels)
	data := encodePNG(t, quadrantImage(100, 100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := processor.Crop(ctx, data, models.CropRequest{Width: 10, Height: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateRegion_OffsetBounds(t *testing.T) {
	bounds := image.Rect(10, 10, 60, 60)

	assert.NoError(t, ValidateRegion(bounds, models.CropRequest{X: 0, Y: 0, Width: 50, Height: 50}))
	assert.ErrorIs(t, ValidateRegion(bounds, models.CropRequest{X: 1, Y: 0, Width: 50, Height: 50}), ErrOutOfBounds)
	assert.ErrorIs(t, ValidateRegion(bounds, models.CropRequest{X: 0, Y: 0, Width: 0, Height: 5}), ErrOutOfBounds)
}
