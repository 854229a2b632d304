package qrservice

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/qrgram/qrbot-go/internal/config"
	"github.com/qrgram/qrbot-go/internal/errors"
)

// LocalGenerator renders QR PNGs in-process instead of delegating to the web
// service. The resulting Image carries bytes for upload rather than a URL.
type LocalGenerator struct {
	render config.RenderConfig
}

// NewLocalGenerator creates a local PNG generator with the given rendering
// parameters. Size is taken from the leading dimension of render.Size; a
// quiet zone of zero disables the border entirely.
func NewLocalGenerator(render config.RenderConfig) *LocalGenerator {
	return &LocalGenerator{render: render}
}

// Generate renders the text as a PNG.
func (g *LocalGenerator) Generate(ctx context.Context, text string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if err := validatePayload(text); err != nil {
		return Image{}, err
	}

	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return Image{}, errors.NewServiceError("generate", 0, err)
	}

	if fg, err := parseHexColor(g.render.Color); err == nil {
		qr.ForegroundColor = fg
	}
	if bg, err := parseHexColor(g.render.BgColor); err == nil {
		qr.BackgroundColor = bg
	}
	if g.render.QZone == 0 {
		qr.DisableBorder = true
	}

	data, err := qr.PNG(pixelSize(g.render.Size))
	if err != nil {
		return Image{}, errors.NewServiceError("generate", 0, err)
	}

	return Image{Data: data, Filename: "qr." + g.render.Format}, nil
}

// pixelSize extracts the width from a "WxH" dimension string.
func pixelSize(size string) int {
	dim, _, _ := strings.Cut(size, "x")
	if px, err := strconv.Atoi(dim); err == nil && px > 0 {
		return px
	}
	return 300
}

// parseHexColor parses a 6-digit hex color without the '#' prefix.
func parseHexColor(s string) (color.Color, error) {
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
