package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // registered so Probe reports gif as unsupported, not corrupt
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"shade/internal/asset"
	"shade/internal/config"
	"shade/internal/services"
)

// EncodedImage is the output of a generation pass, ready to persist.
type EncodedImage struct {
	Data   []byte
	Width  int
	Height int
	Format asset.Format
}

// Generator produces grayscale derivatives and resized variants.
type Generator struct {
	pixelCeiling int
	jpegQuality  int
}

// NewGenerator constructs a generator from configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		pixelCeiling: cfg.Generator.PixelCeiling,
		jpegQuality:  cfg.Generator.JPEGQuality,
	}
}

// PixelCeiling returns the configured decode ceiling.
func (g *Generator) PixelCeiling() int {
	return g.pixelCeiling
}

// Probe reads the image header and returns its dimensions and detected
// format without decoding pixel data.
func (g *Generator) Probe(sourcePath string) (int, int, asset.Format, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return 0, 0, "", services.Wrap(services.ErrSourceUnreadable, "generator", "open", sourcePath, err)
	}
	defer file.Close()

	cfg, name, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, "", services.Wrap(services.ErrSourceUnreadable, "generator", "probe", sourcePath, err)
	}
	format, err := asset.ParseFormat(name)
	if err != nil {
		return 0, 0, "", services.Wrap(services.ErrUnsupportedFormat, "generator", "probe", name, nil)
	}
	return cfg.Width, cfg.Height, format, nil
}

// Generate decodes the source, converts it to grayscale, and re-encodes it
// in the declared format.
//
// Failure modes: formats outside the allowlist abort with
// services.ErrUnsupportedFormat; sources over the pixel ceiling are rejected
// with services.ErrSizeRejected; missing or corrupt files yield
// services.ErrSourceUnreadable.
func (g *Generator) Generate(sourcePath string, format asset.Format) (*EncodedImage, error) {
	img, err := g.decode(sourcePath, format)
	if err != nil {
		return nil, err
	}
	return g.encode(Grayscale(img), format)
}

// GenerateResized decodes the source, fits it within maxWidth x maxHeight
// preserving aspect ratio, and re-encodes. Used to materialize size
// variants; the grayscale pass runs separately on the variant file so the
// ceiling applies per variant.
func (g *Generator) GenerateResized(sourcePath string, format asset.Format, maxWidth, maxHeight int) (*EncodedImage, error) {
	img, err := g.decode(sourcePath, format)
	if err != nil {
		return nil, err
	}
	return g.encode(fitWithin(img, maxWidth, maxHeight), format)
}

func (g *Generator) decode(sourcePath string, format asset.Format) (image.Image, error) {
	switch format {
	case asset.FormatPNG, asset.FormatJPEG:
	default:
		return nil, services.Wrap(services.ErrUnsupportedFormat, "generator", "decode", string(format), nil)
	}

	width, height, detected, err := g.Probe(sourcePath)
	if err != nil {
		return nil, err
	}
	if detected != format {
		return nil, services.Wrap(services.ErrSourceUnreadable, "generator", "decode",
			fmt.Sprintf("declared %s but file is %s", format, detected), nil)
	}
	if area := width * height; area > g.pixelCeiling {
		return nil, services.Wrap(services.ErrSizeRejected, "generator", "decode",
			fmt.Sprintf("%dx%d exceeds pixel ceiling %d", width, height, g.pixelCeiling), nil)
	}

	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceUnreadable, "generator", "open", sourcePath, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceUnreadable, "generator", "decode", sourcePath, err)
	}
	return img, nil
}

func (g *Generator) encode(img image.Image, format asset.Format) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, img, format, g.jpegQuality); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	return &EncodedImage{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

func encodeTo(w io.Writer, img image.Image, format asset.Format, quality int) error {
	switch format {
	case asset.FormatPNG:
		return png.Encode(w, img)
	case asset.FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return services.Wrap(services.ErrUnsupportedFormat, "generator", "encode", string(format), nil)
	}
}

// Grayscale converts an image using the standard luminance weights of
// color.GrayModel.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}
