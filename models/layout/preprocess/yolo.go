package preprocess

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-layout/images"
)

// YOLO resizes to a fixed size and scales samples into [0, 1].
type YOLO struct {
	base
}

// NewYOLO creates a YOLO preprocessor for the given output size.
func NewYOLO(size images.Size, opts ...Option) *YOLO {
	return &YOLO{base: newBase(size, opts)}
}

// Process converts img into a (1, 3, H, W) float32 tensor. The image is not
// validated here; an empty Mat fails inside the resize.
func (p *YOLO) Process(img gocv.Mat) (*tensor.Dense, error) {
	resized, err := images.Resize(img, p.size, p.backend)
	if err != nil {
		return nil, errors.Wrap(err, "resize failed")
	}
	defer resized.Close()

	hwc, err := hwcTensor(resized, false)
	if err != nil {
		return nil, err
	}
	if _, err := hwc.DivScalar(float32(255), true, tensor.UseUnsafe()); err != nil {
		return nil, errors.Wrap(err, "normalize failed")
	}

	out, err := toNCHW(hwc)
	if err != nil {
		return nil, err
	}
	p.debugf("yolo: %s -> %v", images.SizeOf(img), out.Shape())
	return out, nil
}
