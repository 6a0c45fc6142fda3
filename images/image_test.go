package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// solidMat returns a CV_8UC3 Mat filled with the given BGR value.
func solidMat(size Size, b, g, r float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), size.Height, size.Width, gocv.MatTypeCV8UC3)
}

func TestSize(t *testing.T) {
	s := Size{Width: 640, Height: 480}
	assert.Equal(t, "480x640", s.String())
	assert.Equal(t, image.Pt(640, 480), s.Point())
	assert.True(t, s.Valid())
	assert.False(t, Size{Width: 0, Height: 10}.Valid())
	assert.False(t, Size{Width: 10, Height: -1}.Valid())
}

func TestValidateMat(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	assert.ErrorIs(t, ValidateMat(empty), ErrEmptyImage)

	gray := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer gray.Close()
	assert.ErrorIs(t, ValidateMat(gray), ErrUnsupportedType)

	bgr := solidMat(Size{Width: 4, Height: 4}, 1, 2, 3)
	defer bgr.Close()
	assert.NoError(t, ValidateMat(bgr))
}

func TestFromHWC(t *testing.T) {
	size := Size{Width: 3, Height: 2}
	data := make([]byte, size.Width*size.Height*Channels)
	for i := range data {
		data[i] = byte(i)
	}

	mat, err := FromHWC(data, size)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, size, SizeOf(mat))
	assert.Equal(t, gocv.MatTypeCV8UC3, mat.Type())
	// Row 1, column 2, channel 1 is sample (1*3+2)*3+1.
	assert.Equal(t, uint8(16), mat.GetUCharAt3(1, 2, 1))

	// The Mat must not alias the caller's buffer.
	data[0] = 200
	assert.Equal(t, uint8(0), mat.GetUCharAt3(0, 0, 0))
}

func TestFromHWCRejectsBadInput(t *testing.T) {
	_, err := FromHWC(make([]byte, 10), Size{Width: 2, Height: 2})
	assert.Error(t, err, "short buffer should fail")

	_, err = FromHWC(nil, Size{})
	assert.Error(t, err, "zero size should fail")
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	mat, err := FromImage(img)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, Size{Width: 5, Height: 4}, SizeOf(mat))
	// OpenCV order is BGR.
	assert.Equal(t, uint8(30), mat.GetUCharAt3(0, 0, 0))
	assert.Equal(t, uint8(20), mat.GetUCharAt3(0, 0, 1))
	assert.Equal(t, uint8(10), mat.GetUCharAt3(0, 0, 2))

	_, err = FromImage(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestChecksum(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	assert.Equal(t, "empty", Checksum(empty))

	a := solidMat(Size{Width: 8, Height: 8}, 1, 2, 3)
	defer a.Close()
	b := solidMat(Size{Width: 8, Height: 8}, 1, 2, 3)
	defer b.Close()
	c := solidMat(Size{Width: 8, Height: 8}, 3, 2, 1)
	defer c.Close()

	assert.Equal(t, Checksum(a), Checksum(b))
	assert.NotEqual(t, Checksum(a), Checksum(c))
	assert.Len(t, Checksum(a), 32)
}
