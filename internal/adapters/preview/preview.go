package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"lawflow/internal/domain"
)

// Bounding boxes for rendered images. Aspect ratio is kept.
const (
	ThumbnailWidth  = 200
	ThumbnailHeight = 200
	PreviewWidth    = 800
	PreviewHeight   = 600

	thumbnailQuality = 85
	previewQuality   = 90
	pdfDPI           = 144
)

// Generator renders JPEG thumbnails for images and JPEG previews for large
// images and the first page of PDFs.
type Generator struct{}

var _ domain.PreviewGenerator = Generator{}

func NewGenerator() Generator {
	return Generator{}
}

// Generate returns nil slices when the type has no rendering.
func (g Generator) Generate(ctx context.Context, mimeType string, content []byte) ([]byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return imagePreviews(content)
	case mimeType == "application/pdf":
		p, err := pdfPreview(content)
		return p, nil, err
	default:
		return nil, nil, nil
	}
}

func imagePreviews(content []byte) ([]byte, []byte, error) {
	img, err := imaging.Decode(bytes.NewReader(content), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}
	thumb, err := encodeFit(img, ThumbnailWidth, ThumbnailHeight, thumbnailQuality)
	if err != nil {
		return nil, nil, err
	}
	// Small images are fully shown by their thumbnail.
	b := img.Bounds()
	if max(b.Dx(), b.Dy()) <= max(ThumbnailWidth, ThumbnailHeight) {
		return nil, thumb, nil
	}
	prev, err := encodeFit(img, PreviewWidth, PreviewHeight, previewQuality)
	if err != nil {
		return nil, thumb, err
	}
	return prev, thumb, nil
}

func pdfPreview(content []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, nil
	}
	page, err := doc.ImageDPI(0, pdfDPI)
	if err != nil {
		return nil, fmt.Errorf("render pdf page: %w", err)
	}
	return encodeFit(page, PreviewWidth, PreviewHeight, previewQuality)
}

func encodeFit(img image.Image, w, h, quality int) ([]byte, error) {
	var buf bytes.Buffer
	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
