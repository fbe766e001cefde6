package preview

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func TestGenerate_LargeImage(t *testing.T) {
	prev, thumb, err := NewGenerator().Generate(context.Background(), "image/png", pngBytes(t, 1600, 900))
	require.NoError(t, err)
	require.NotNil(t, thumb)
	require.NotNil(t, prev)

	tb := decodeJPEG(t, thumb).Bounds()
	assert.Equal(t, 200, tb.Dx())
	assert.LessOrEqual(t, tb.Dy(), 200)

	pb := decodeJPEG(t, prev).Bounds()
	assert.Equal(t, 800, pb.Dx())
	assert.Equal(t, 450, pb.Dy())
}

func TestGenerate_SmallImageHasThumbnailOnly(t *testing.T) {
	prev, thumb, err := NewGenerator().Generate(context.Background(), "image/png", pngBytes(t, 120, 80))
	require.NoError(t, err)
	assert.Nil(t, prev)
	require.NotNil(t, thumb)
	b := decodeJPEG(t, thumb).Bounds()
	assert.Equal(t, 120, b.Dx())
	assert.Equal(t, 80, b.Dy())
}

func TestGenerate_CorruptImage(t *testing.T) {
	prev, thumb, err := NewGenerator().Generate(context.Background(), "image/jpeg", []byte("not an image"))
	assert.Error(t, err)
	assert.Nil(t, prev)
	assert.Nil(t, thumb)
}

func TestGenerate_CorruptPDF(t *testing.T) {
	prev, _, err := NewGenerator().Generate(context.Background(), "application/pdf", []byte("%PDF-garbage"))
	assert.Error(t, err)
	assert.Nil(t, prev)
}

func TestGenerate_UnsupportedType(t *testing.T) {
	prev, thumb, err := NewGenerator().Generate(context.Background(), "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Nil(t, prev)
	assert.Nil(t, thumb)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewGenerator().Generate(ctx, "image/png", pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}
