package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	stdimage "image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	CanonicalExt         = ".jpg"
	CanonicalContentType = "image/jpeg"
)

// Processor re-encodes uploads into the canonical stored format: opaque JPEG
// no larger than MaxDimension on either side. Inputs declaring more than
// MaxPixels pixels are rejected before any pixel data is decoded.
type Processor struct {
	MaxDimension int
	MaxPixels    int64
	Quality      int
	Timeout      time.Duration
}

var ErrImageTooLarge = errors.New("image dimensions exceed the pixel budget")

type processResult struct {
	data []byte
	err  error
}

func (p Processor) Process(ctx context.Context, data []byte) ([]byte, error) {
	if err := p.checkBounds(data); err != nil {
		return nil, err
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	done := make(chan processResult, 1)
	go func() {
		out, err := p.encode(data)
		done <- processResult{data: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &domain.StorageError{Op: "process", Err: ctx.Err()}
	case res := <-done:
		return res.data, res.err
	}
}

// checkBounds reads only the header. Decode allocates the full canvas the
// header declares, whatever the upload's byte size.
func (p Processor) checkBounds(data []byte) error {
	cfg, _, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return &domain.StorageError{Op: "decode", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &domain.StorageError{Op: "decode", Err: fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)}
	}
	if p.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > p.MaxPixels {
		return &domain.StorageError{Op: "decode", Err: fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)}
	}
	return nil
}

func (p Processor) encode(data []byte) ([]byte, error) {
	src, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.StorageError{Op: "decode", Err: err}
	}

	bounds := src.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, src, stdimage.Pt(0, 0), 1.0)

	var out stdimage.Image = flat
	if p.MaxDimension > 0 && (bounds.Dx() > p.MaxDimension || bounds.Dy() > p.MaxDimension) {
		out = imaging.Fit(flat, p.MaxDimension, p.MaxDimension, imaging.Lanczos)
	}

	quality := p.Quality
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, &domain.StorageError{Op: "encode", Err: fmt.Errorf("jpeg: %w", err)}
	}
	return buf.Bytes(), nil
}
