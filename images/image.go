// Package images - Mat primitives shared by the layout preprocessors.
package images

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Channels is the number of interleaved samples per pixel the preprocessors accept.
const Channels = 3

var (
	// ErrEmptyImage is returned when a Mat holds no pixels.
	ErrEmptyImage = errors.New("image is empty")
	// ErrUnsupportedType is returned when a Mat is not 8-bit, 3-channel.
	ErrUnsupportedType = errors.New("unsupported mat type")
)

// Size is a width/height pair in pixels.
type Size struct {
	// Width is the number of columns.
	Width int `json:"width" yaml:"width"`
	// Height is the number of rows.
	Height int `json:"height" yaml:"height"`
}

// String returns the size as HxW, the order tensors are indexed in.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// Point returns the size as an image.Point for gocv calls (X is width).
func (s Size) Point() image.Point {
	return image.Pt(s.Width, s.Height)
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// SizeOf returns the dimensions of a Mat.
func SizeOf(m gocv.Mat) Size {
	return Size{Width: m.Cols(), Height: m.Rows()}
}

// ValidateMat checks that m is a non-empty CV_8UC3 Mat.
//
// Arguments:
//   - m: The Mat to check.
//
// Returns:
//   - error: ErrEmptyImage or ErrUnsupportedType, nil if the Mat is usable.
func ValidateMat(m gocv.Mat) error {
	if m.Empty() {
		return ErrEmptyImage
	}
	if m.Type() != gocv.MatTypeCV8UC3 {
		return errors.Wrapf(ErrUnsupportedType, "got %v, want CV_8UC3", m.Type())
	}
	return nil
}

// FromHWC wraps an interleaved height-width-channel byte buffer as a Mat.
// The channel order is kept as given, BGR by convention.
//
// Arguments:
//   - data: H*W*3 samples, row-major.
//   - size: The image dimensions.
//
// Returns:
//   - gocv.Mat: A CV_8UC3 Mat owning a copy of data. The caller closes it.
//   - error: An error if the buffer length does not match size.
//
// @example
//
//	mat, err := images.FromHWC(pixels, images.Size{Width: 640, Height: 480})
//	if err != nil {
//	    return err
//	}
//	defer mat.Close()
func FromHWC(data []byte, size Size) (gocv.Mat, error) {
	if !size.Valid() {
		return gocv.NewMat(), fmt.Errorf("invalid dimensions: %s", size)
	}
	if want := size.Width * size.Height * Channels; len(data) != want {
		return gocv.NewMat(), fmt.Errorf("buffer holds %d bytes, %s needs %d", len(data), size, want)
	}
	mat, err := gocv.NewMatFromBytes(size.Height, size.Width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to create mat")
	}
	// NewMatFromBytes shares the Go buffer; clone so the Mat owns its pixels.
	owned := mat.Clone()
	mat.Close()
	return owned, nil
}

// FromImage converts a Go image into a BGR CV_8UC3 Mat.
//
// Arguments:
//   - img: Any image.Image; alpha is dropped.
//
// Returns:
//   - gocv.Mat: The converted Mat. The caller closes it.
//   - error: An error if the image is nil or conversion fails.
func FromImage(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), ErrEmptyImage
	}
	if img.Bounds().Empty() {
		return gocv.NewMat(), ErrEmptyImage
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to convert image")
	}
	return mat, nil
}

// Checksum returns a hex MD5 digest of a Mat's pixels, "empty" for an empty
// Mat. Identical images yield identical digests.
func Checksum(m gocv.Mat) string {
	if m.Empty() {
		return "empty"
	}
	data, err := m.DataPtrUint8()
	if err != nil {
		data = m.ToBytes()
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
