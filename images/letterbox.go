package images

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// DefaultPadColor is the grey used by YOLO-family letterboxing.
var DefaultPadColor = color.RGBA{R: 114, G: 114, B: 114, A: 0}

// LetterBox resizes an image while preserving its aspect ratio and pads the
// remainder with a constant border.
type LetterBox struct {
	// Shape is the output size (or, with Auto, the size to fit within).
	Shape Size
	// Auto pads only up to the next multiple of Stride instead of the full Shape.
	Auto bool
	// ScaleFill stretches to Shape with no padding.
	ScaleFill bool
	// ScaleUp allows enlarging images smaller than Shape.
	ScaleUp bool
	// Center splits the padding evenly; otherwise it all goes bottom/right.
	Center bool
	// Stride is the alignment used when Auto is set.
	Stride int
	// PadColor fills the border.
	PadColor color.RGBA
	// Backend resizes the source before padding; empty selects BackendOpenCV.
	Backend ResizeBackend
}

// LetterBoxParams records how a source image maps into the letterboxed output.
type LetterBoxParams struct {
	// Ratio is the uniform scale applied to the source.
	Ratio float64
	// Unpadded is the size of the scaled image before padding.
	Unpadded Size
	// Top, Bottom, Left and Right are the border widths in pixels.
	Top, Bottom, Left, Right int
}

// Output returns the final size after padding.
func (p LetterBoxParams) Output() Size {
	return Size{
		Width:  p.Unpadded.Width + p.Left + p.Right,
		Height: p.Unpadded.Height + p.Top + p.Bottom,
	}
}

// NewLetterBox returns a centred, scale-up letterbox with the default pad color.
//
// Arguments:
//   - shape: The target size.
//   - auto: Pad to the nearest stride multiple rather than to shape.
//   - stride: Alignment for auto padding, typically 32.
//
// Returns:
//   - *LetterBox: The configured transform.
//
// @example
//
//	lb := images.NewLetterBox(images.Size{Width: 1024, Height: 1024}, false, 32)
//	padded, err := lb.Apply(frame)
func NewLetterBox(shape Size, auto bool, stride int) *LetterBox {
	return &LetterBox{
		Shape:    shape,
		Auto:     auto,
		ScaleUp:  true,
		Center:   true,
		Stride:   stride,
		PadColor: DefaultPadColor,
	}
}

// Params computes the scale and padding for a source of the given size.
func (l *LetterBox) Params(src Size) LetterBoxParams {
	r := math.Min(
		float64(l.Shape.Height)/float64(src.Height),
		float64(l.Shape.Width)/float64(src.Width),
	)
	if !l.ScaleUp {
		r = math.Min(r, 1.0)
	}

	unpad := Size{
		Width:  int(math.RoundToEven(float64(src.Width) * r)),
		Height: int(math.RoundToEven(float64(src.Height) * r)),
	}
	dw := float64(l.Shape.Width - unpad.Width)
	dh := float64(l.Shape.Height - unpad.Height)

	switch {
	case l.Auto && l.Stride > 0:
		dw = float64(floorMod(int(dw), l.Stride))
		dh = float64(floorMod(int(dh), l.Stride))
	case l.ScaleFill:
		dw, dh = 0, 0
		unpad = l.Shape
	}

	p := LetterBoxParams{Ratio: r, Unpadded: unpad}
	if l.Center {
		dw /= 2
		dh /= 2
		p.Top = int(math.RoundToEven(dh - 0.1))
		p.Left = int(math.RoundToEven(dw - 0.1))
	}
	p.Bottom = int(math.RoundToEven(dh + 0.1))
	p.Right = int(math.RoundToEven(dw + 0.1))
	return p
}

// Apply letterboxes src.
//
// Arguments:
//   - src: The CV_8UC3 source Mat.
//
// Returns:
//   - gocv.Mat: The padded image. The caller closes it.
//   - error: ErrEmptyImage for an empty source, or a resize/border failure
//     (including an unsupported Backend).
func (l *LetterBox) Apply(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), ErrEmptyImage
	}

	p := l.Params(SizeOf(src))

	scaled := src
	if SizeOf(src) != p.Unpadded {
		resized, err := Resize(src, p.Unpadded, l.Backend)
		if err != nil {
			return gocv.NewMat(), errors.Wrap(err, "letterbox resize failed")
		}
		defer resized.Close()
		scaled = resized
	}

	dst := gocv.NewMat()
	gocv.CopyMakeBorder(scaled, &dst, p.Top, p.Bottom, p.Left, p.Right, gocv.BorderConstant, l.PadColor)
	if dst.Empty() {
		dst.Close()
		return gocv.NewMat(), errors.Errorf("failed to pad %s to %s", p.Unpadded, p.Output())
	}
	return dst, nil
}

// floorMod matches Python's modulo for negative dividends.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
