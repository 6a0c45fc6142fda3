package inference

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

// ErrInvalidTensor is returned for tensors that are not (N, C, H, W) float32.
var ErrInvalidTensor = errors.New("invalid input tensor")

// ShapeOf converts a validated NCHW tensor shape into an onnxruntime shape.
//
// Arguments:
//   - t: A preprocessed tensor.
//
// Returns:
//   - ort.Shape: The same dimensions as int64.
//   - error: ErrInvalidTensor if t is not a rank-4 float32 tensor.
func ShapeOf(t *tensor.Dense) (ort.Shape, error) {
	if err := validate(t); err != nil {
		return nil, err
	}
	shape := t.Shape()
	dims := make([]int64, len(shape))
	for i, d := range shape {
		dims[i] = int64(d)
	}
	return ort.NewShape(dims...), nil
}

// NewInputTensor copies a preprocessed tensor into a new onnxruntime tensor of
// the same shape. The caller destroys the returned tensor.
//
// Arguments:
//   - t: A (1, 3, H, W) float32 tensor from a layout preprocessor.
//
// Returns:
//   - *ort.Tensor[float32]: The engine-owned input tensor.
//   - error: ErrInvalidTensor, ErrRuntimeNotInitialized or a runtime failure.
//
// @example
//
//	input, err := p.Process(page)
//	if err != nil {
//	    return err
//	}
//	ortInput, err := inference.NewInputTensor(input)
//	if err != nil {
//	    return err
//	}
//	defer ortInput.Destroy()
func NewInputTensor(t *tensor.Dense) (*ort.Tensor[float32], error) {
	shape, err := ShapeOf(t)
	if err != nil {
		return nil, err
	}
	if !ort.IsInitialized() {
		return nil, ErrRuntimeNotInitialized
	}

	data := make([]float32, t.DataSize())
	copy(data, t.Float32s())

	out, err := ort.NewTensor(shape, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create onnxruntime tensor")
	}
	return out, nil
}

// CopyInto fills an existing session input tensor, typically one bound to an
// AdvancedSession, with a preprocessed tensor of the same shape.
//
// Arguments:
//   - dst: The destination tensor.
//   - src: The preprocessed tensor.
//
// Returns:
//   - error: ErrInvalidTensor if the shapes differ.
func CopyInto(dst *ort.Tensor[float32], src *tensor.Dense) error {
	if dst == nil {
		return errors.Wrap(ErrInvalidTensor, "destination tensor is nil")
	}
	shape, err := ShapeOf(src)
	if err != nil {
		return err
	}
	if !shapesEqual(dst.GetShape(), shape) {
		return errors.Wrapf(ErrInvalidTensor, "destination shape %v, source shape %v", dst.GetShape(), shape)
	}
	copy(dst.GetData(), src.Float32s())
	return nil
}

func validate(t *tensor.Dense) error {
	if t == nil {
		return errors.Wrap(ErrInvalidTensor, "tensor is nil")
	}
	if t.Dtype() != tensor.Float32 {
		return errors.Wrapf(ErrInvalidTensor, "dtype %v, want float32", t.Dtype())
	}
	if t.Dims() != 4 {
		return errors.Wrapf(ErrInvalidTensor, "rank %d, want 4 (NCHW)", t.Dims())
	}
	if t.IsMaterializable() {
		return errors.Wrap(ErrInvalidTensor, "tensor is a view or has a pending transpose")
	}
	return nil
}

func shapesEqual(a, b ort.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
