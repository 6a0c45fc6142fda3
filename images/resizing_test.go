package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestResize(t *testing.T) {
	src := solidMat(Size{Width: 100, Height: 100}, 127, 127, 127)
	defer src.Close()

	tests := []struct {
		name    string
		backend ResizeBackend
		size    Size
	}{
		{name: "default backend upscale", backend: "", size: Size{Width: 224, Height: 224}},
		{name: "opencv non-square", backend: BackendOpenCV, size: Size{Width: 608, Height: 800}},
		{name: "opencv downscale", backend: BackendOpenCV, size: Size{Width: 32, Height: 48}},
		{name: "nfnt upscale", backend: BackendNFNT, size: Size{Width: 224, Height: 160}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := Resize(src, tt.size, tt.backend)
			require.NoError(t, err)
			defer dst.Close()

			assert.Equal(t, tt.size, SizeOf(dst), "output should have the requested size")
			assert.Equal(t, gocv.MatTypeCV8UC3, dst.Type())
			// A uniform image stays uniform under interpolation.
			assert.Equal(t, uint8(127), dst.GetUCharAt3(tt.size.Height/2, tt.size.Width/2, 1))
		})
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	size := Size{Width: 64, Height: 48}
	src := solidMat(Size{Width: 100, Height: 80}, 10, 200, 90)
	defer src.Close()

	once, err := Resize(src, size, BackendOpenCV)
	require.NoError(t, err)
	defer once.Close()

	twice, err := Resize(once, size, BackendOpenCV)
	require.NoError(t, err)
	defer twice.Close()

	assert.Equal(t, Checksum(once), Checksum(twice), "resizing to the current size should not change pixels")
	assert.NotEqual(t, Checksum(src), Checksum(once))
}

func TestResizeErrors(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := Resize(empty, Size{Width: 10, Height: 10}, BackendOpenCV)
	assert.ErrorIs(t, err, ErrEmptyImage)

	src := solidMat(Size{Width: 10, Height: 10}, 0, 0, 0)
	defer src.Close()

	_, err = Resize(src, Size{Width: 0, Height: 10}, BackendOpenCV)
	assert.Error(t, err, "zero width should fail")

	_, err = Resize(src, Size{Width: 5, Height: 5}, ResizeBackend("lanczos"))
	assert.Error(t, err, "unknown backend should fail")
}

func TestResizeBackendValid(t *testing.T) {
	assert.True(t, ResizeBackend("").Valid())
	assert.True(t, BackendOpenCV.Valid())
	assert.True(t, BackendNFNT.Valid())
	assert.False(t, ResizeBackend("vips").Valid())
}
