package preprocess

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-layout/images"
)

var (
	// ImageNetMean is the per-channel mean subtracted after scaling to [0, 1].
	ImageNetMean = [images.Channels]float64{0.485, 0.456, 0.406}
	// ImageNetStd is the per-channel standard deviation divided out after the mean.
	ImageNetStd = [images.Channels]float64{0.229, 0.224, 0.225}
)

// Standard resizes to a fixed size and applies mean/std normalization.
//
// The mean and std constants are in RGB order; callers feeding BGR Mats get
// the channel pairing the PP layout models were exported with.
type Standard struct {
	base
	mean  [images.Channels]float64
	std   [images.Channels]float64
	scale float64
}

// NewStandard creates a Standard preprocessor for the given output size.
//
// Arguments:
//   - size: The tensor height and width.
//   - opts: Optional resize backend and logger.
//
// Returns:
//   - *Standard: The configured preprocessor.
//
// @example
//
//	p := preprocess.NewStandard(images.Size{Width: 608, Height: 800})
//	input, err := p.Process(frame)
func NewStandard(size images.Size, opts ...Option) *Standard {
	return &Standard{
		base:  newBase(size, opts),
		mean:  ImageNetMean,
		std:   ImageNetStd,
		scale: 1 / 255.0,
	}
}

// Process converts img into a (1, 3, H, W) float32 tensor.
//
// Arguments:
//   - img: A CV_8UC3 Mat.
//
// Returns:
//   - *tensor.Dense: The normalized channel-first tensor.
//   - error: ErrInvalidInput for an empty Mat, or any resize/permute failure.
func (p *Standard) Process(img gocv.Mat) (*tensor.Dense, error) {
	if img.Empty() {
		return nil, errors.Wrap(ErrInvalidInput, "image is empty")
	}

	resized, err := images.Resize(img, p.size, p.backend)
	if err != nil {
		return nil, errors.Wrap(err, "resize failed")
	}
	defer resized.Close()

	hwc, err := hwcTensor(resized, false)
	if err != nil {
		return nil, err
	}
	p.normalize(hwc)

	out, err := toNCHW(hwc)
	if err != nil {
		return nil, err
	}
	p.debugf("standard: %s -> %v", images.SizeOf(img), out.Shape())
	return out, nil
}

// normalize applies (x*scale - mean[c]) / std[c] in place on an HWC tensor.
func (p *Standard) normalize(hwc *tensor.Dense) {
	data := hwc.Float32s()
	for i := range data {
		c := i % images.Channels
		data[i] = float32((float64(data[i])*p.scale - p.mean[c]) / p.std[c])
	}
}
