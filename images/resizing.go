package images

import (
	"fmt"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ResizeBackend selects the implementation used for exact resizes.
type ResizeBackend string

const (
	// BackendOpenCV resizes with cv::resize and bilinear interpolation.
	BackendOpenCV ResizeBackend = "opencv"
	// BackendNFNT resizes in pure Go with nfnt/resize bilinear interpolation.
	BackendNFNT ResizeBackend = "nfnt"
)

// Valid reports whether b names a known backend. The empty value means BackendOpenCV.
func (b ResizeBackend) Valid() bool {
	switch b {
	case "", BackendOpenCV, BackendNFNT:
		return true
	}
	return false
}

// Resize scales src to exactly size without preserving the aspect ratio.
//
// Arguments:
//   - src: The CV_8UC3 source Mat.
//   - size: The output dimensions.
//   - backend: The resize implementation; empty selects BackendOpenCV.
//
// Returns:
//   - gocv.Mat: A new Mat of the requested size. The caller closes it.
//   - error: ErrEmptyImage for an empty source, or the backend failure.
//
// @example
//
//	resized, err := images.Resize(frame, images.Size{Width: 608, Height: 800}, images.BackendOpenCV)
//	if err != nil {
//	    return err
//	}
//	defer resized.Close()
func Resize(src gocv.Mat, size Size, backend ResizeBackend) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), ErrEmptyImage
	}
	if !size.Valid() {
		return gocv.NewMat(), fmt.Errorf("invalid dimensions: %s", size)
	}

	// Same-size resizes are an identity; return a copy so ownership stays uniform.
	if SizeOf(src) == size {
		return src.Clone(), nil
	}

	switch backend {
	case "", BackendOpenCV:
		return resizeOpenCV(src, size)
	case BackendNFNT:
		return resizeNFNT(src, size)
	default:
		return gocv.NewMat(), fmt.Errorf("unsupported resize backend: %q", backend)
	}
}

func resizeOpenCV(src gocv.Mat, size Size) (gocv.Mat, error) {
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, size.Point(), 0, 0, gocv.InterpolationLinear)
	if dst.Empty() {
		dst.Close()
		return gocv.NewMat(), errors.Errorf("failed to resize %s to %s", SizeOf(src), size)
	}
	return dst, nil
}

func resizeNFNT(src gocv.Mat, size Size) (gocv.Mat, error) {
	img, err := src.ToImage()
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to convert mat to image")
	}

	resized := resize.Resize(uint(size.Width), uint(size.Height), img, resize.Bilinear)

	dst, err := gocv.ImageToMatRGB(resized)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to convert resized image")
	}
	return dst, nil
}
