// Package preprocess turns BGR gocv Mats into (1, 3, H, W) float32 tensors for
// the layout-detection model families.
//
// Three variants exist, one per input convention:
//   - Standard: exact resize, ImageNet mean/std normalization (PP layout models).
//   - YOLO: exact resize, divide by 255 (YOLOv8 layout models).
//   - Letterbox: aspect-preserving letterbox, BGR to RGB, divide by 255
//     (DocLayout-YOLO models).
//
// Every variant is configured once at construction and holds no per-call
// state, so a single instance may be shared across goroutines.
package preprocess

import (
	"io"
	"log"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-layout/images"
)

// ErrInvalidInput is returned when a preprocessor is given no image.
var ErrInvalidInput = errors.New("invalid input")

// Option configures a preprocessor at construction time.
type Option func(*base)

// WithResizeBackend selects the resize implementation, including the one the
// letterbox variant scales with before padding.
func WithResizeBackend(b images.ResizeBackend) Option {
	return func(p *base) {
		p.backend = b
	}
}

// WithLogger routes debug traces to l. A nil logger disables them.
func WithLogger(l *log.Logger) Option {
	return func(p *base) {
		p.logger = l
	}
}

// base holds configuration shared by all variants.
type base struct {
	size    images.Size
	backend images.ResizeBackend
	logger  *log.Logger
}

func newBase(size images.Size, opts []Option) base {
	b := base{size: size, backend: images.BackendOpenCV}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Size returns the spatial size of the produced tensor.
func (b *base) Size() images.Size {
	return b.size
}

// SetDebugMode enables or disables debug logging to stderr.
//
// Arguments:
//   - enabled: Whether to emit traces.
//
// @example
//
//	p := preprocess.NewLetterbox(images.Size{Width: 1024, Height: 1024})
//	p.SetDebugMode(true)
func (b *base) SetDebugMode(enabled bool) {
	if !enabled {
		b.logger = nil
		return
	}
	if b.logger == nil {
		b.logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
	}
}

func (b *base) debugf(format string, args ...interface{}) {
	if b.logger == nil || b.logger.Writer() == io.Discard {
		return
	}
	b.logger.Printf(format, args...)
}

// hwcTensor copies a CV_8UC3 Mat into a float32 (H, W, C) tensor. With
// reverse set the channel axis is flipped, turning BGR into RGB.
func hwcTensor(m gocv.Mat, reverse bool) (*tensor.Dense, error) {
	if err := images.ValidateMat(m); err != nil {
		return nil, err
	}
	size := images.SizeOf(m)
	raw := m.ToBytes()
	if want := size.Width * size.Height * images.Channels; len(raw) != want {
		return nil, errors.Errorf("mat holds %d bytes, %s needs %d", len(raw), size, want)
	}

	data := make([]float32, len(raw))
	for px := 0; px < len(raw); px += images.Channels {
		for c := 0; c < images.Channels; c++ {
			src := c
			if reverse {
				src = images.Channels - 1 - c
			}
			data[px+c] = float32(raw[px+src])
		}
	}
	return tensor.New(
		tensor.WithShape(size.Height, size.Width, images.Channels),
		tensor.WithBacking(data),
	), nil
}

// toNCHW permutes an (H, W, C) tensor to channel-first and prepends the batch axis.
func toNCHW(hwc *tensor.Dense) (*tensor.Dense, error) {
	shape := hwc.Shape()
	h, w, c := shape[0], shape[1], shape[2]

	t, err := tensor.Transpose(hwc, 2, 0, 1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to permute to CHW")
	}
	chw, ok := t.(*tensor.Dense)
	if !ok {
		return nil, errors.Errorf("unexpected tensor type %T", t)
	}
	if err := chw.Reshape(1, c, h, w); err != nil {
		return nil, errors.Wrap(err, "failed to add batch axis")
	}
	return chw, nil
}

// Bounds returns the smallest and largest value of a float32 tensor. Non-float32
// or empty tensors yield NaN for both.
func Bounds(t *tensor.Dense) (lo, hi float32) {
	if t == nil || t.Dtype() != tensor.Float32 || t.DataSize() == 0 {
		return math32.NaN(), math32.NaN()
	}
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, v := range t.Float32s() {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return lo, hi
}
