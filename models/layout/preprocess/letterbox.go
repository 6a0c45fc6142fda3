package preprocess

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-layout/images"
)

// LetterboxStride is the alignment the DocLayout models downsample by.
const LetterboxStride = 32

// Letterbox pads to the target size without distorting the aspect ratio, flips
// BGR to RGB and scales samples into [0, 1].
type Letterbox struct {
	base
	letterbox *images.LetterBox
}

// NewLetterbox creates a Letterbox preprocessor for the given output size.
//
// Arguments:
//   - size: The tensor height and width.
//   - opts: Optional logger and resize backend for the letterbox resize.
//
// Returns:
//   - *Letterbox: The configured preprocessor.
//
// @example
//
//	p := preprocess.NewLetterbox(images.Size{Width: 1024, Height: 1024})
//	input, err := p.Process(page)
func NewLetterbox(size images.Size, opts ...Option) *Letterbox {
	b := newBase(size, opts)
	lb := images.NewLetterBox(size, false, LetterboxStride)
	lb.Backend = b.backend
	return &Letterbox{
		base:      b,
		letterbox: lb,
	}
}

// Params reports the scale and padding Process applies to a source of the
// given size, for mapping detections back to the original image.
func (p *Letterbox) Params(src images.Size) images.LetterBoxParams {
	return p.letterbox.Params(src)
}

// Process converts img into a (1, 3, H, W) float32 tensor in RGB order.
func (p *Letterbox) Process(img gocv.Mat) (*tensor.Dense, error) {
	p.debugf("letterbox input: %s", images.SizeOf(img))

	padded, err := p.letterbox.Apply(img)
	if err != nil {
		return nil, errors.Wrap(err, "letterbox failed")
	}
	defer padded.Close()

	p.debugf("letterbox output: %s", images.SizeOf(padded))

	hwc, err := hwcTensor(padded, true)
	if err != nil {
		return nil, err
	}
	shape := hwc.Shape()
	h, w, c := shape[0], shape[1], shape[2]

	if err := hwc.Reshape(1, h, w, c); err != nil {
		return nil, errors.Wrap(err, "failed to add batch axis")
	}
	if err := hwc.T(0, 3, 1, 2); err != nil {
		return nil, errors.Wrap(err, "failed to permute to NCHW")
	}
	// T only rewrites strides; Transpose moves the data so the backing is NCHW.
	if err := hwc.Transpose(); err != nil {
		return nil, errors.Wrap(err, "failed to materialize NCHW")
	}
	if _, err := hwc.DivScalar(float32(255), true, tensor.UseUnsafe()); err != nil {
		return nil, errors.Wrap(err, "normalize failed")
	}
	return hwc, nil
}
