// Package imaging resizes and re-encodes uploaded images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	imglib "github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/xiebiao/blend/internal/domain/media"
)

// Size is the bounding box of a preset.
type Size struct {
	MaxWidth  int
	MaxHeight int
}

// Presets maps every preset to its bounding box.
var Presets = map[media.Preset]Size{
	media.PresetThumbnail: {150, 150},
	media.PresetSmall:     {300, 300},
	media.PresetMedium:    {600, 600},
	media.PresetLarge:     {1200, 1200},
	media.PresetXLarge:    {1920, 1920},
}

const (
	// compressAbove is the source size past which the lower quality applies.
	compressAbove = 100 * 1024

	qualityCompressed = 80
	qualityPreserved  = 95
)

// Result is an optimized image.
type Result struct {
	Data        []byte
	Ext         string
	ContentType string
	Width       int
	Height      int
}

// Optimizer fits images inside a preset without enlarging them. Re-encoding
// drops EXIF and other metadata after orientation has been applied.
type Optimizer struct{}

func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize decodes data (jpeg, png, gif or webp) and re-encodes it. PNG and
// webp sources are written as PNG so transparency survives, everything else
// as JPEG.
func (o *Optimizer) Optimize(data []byte, preset media.Preset) (*Result, error) {
	size, ok := Presets[preset]
	if !ok {
		return nil, fmt.Errorf("invalid preset: %s", preset)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("detect image format: %w", err)
	}

	img, err := imglib.Decode(bytes.NewReader(data), imglib.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", format, err)
	}

	b := img.Bounds()
	if b.Dx() > size.MaxWidth || b.Dy() > size.MaxHeight {
		img = imglib.Fit(img, size.MaxWidth, size.MaxHeight, imglib.Lanczos)
	}

	compress := len(data) > compressAbove

	var buf bytes.Buffer
	res := &Result{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	switch format {
	case "png", "webp":
		level := png.DefaultCompression
		if compress {
			level = png.BestCompression
		}
		err = imglib.Encode(&buf, img, imglib.PNG, imglib.PNGCompressionLevel(level))
		res.Ext, res.ContentType = ".png", "image/png"
	default:
		quality := qualityPreserved
		if compress {
			quality = qualityCompressed
		}
		err = imglib.Encode(&buf, img, imglib.JPEG, imglib.JPEGQuality(quality))
		res.Ext, res.ContentType = ".jpg", "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	res.Data = buf.Bytes()
	return res, nil
}
