package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

func nchw(h, w int) *tensor.Dense {
	data := make([]float32, 3*h*w)
	for i := range data {
		data[i] = float32(i) / float32(len(data))
	}
	return tensor.New(tensor.WithShape(1, 3, h, w), tensor.WithBacking(data))
}

// requireRuntime skips tests that need the onnxruntime shared library.
func requireRuntime(t *testing.T) {
	t.Helper()
	if err := InitRuntime(""); err != nil {
		t.Skipf("onnxruntime unavailable: %v", err)
	}
}

func TestShapeOf(t *testing.T) {
	shape, err := ShapeOf(nchw(4, 6))
	require.NoError(t, err)
	assert.Equal(t, ort.NewShape(1, 3, 4, 6), shape)
}

func TestShapeOfRejectsInvalidTensors(t *testing.T) {
	transposed := nchw(2, 2)
	require.NoError(t, transposed.T(0, 2, 3, 1))

	tests := []struct {
		name string
		t    *tensor.Dense
	}{
		{name: "nil", t: nil},
		{name: "rank 3", t: tensor.New(tensor.WithShape(3, 2, 2), tensor.WithBacking(make([]float32, 12)))},
		{name: "float64", t: tensor.New(tensor.WithShape(1, 3, 1, 1), tensor.WithBacking(make([]float64, 3)))},
		{name: "pending transpose", t: transposed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ShapeOf(tt.t)
			assert.ErrorIs(t, err, ErrInvalidTensor)
		})
	}
}

func TestCopyIntoNilDestination(t *testing.T) {
	assert.ErrorIs(t, CopyInto(nil, nchw(2, 2)), ErrInvalidTensor)
}

func TestSharedLibraryPath(t *testing.T) {
	// Every platform the repo ships binaries for resolves to a third_party path.
	if p := SharedLibraryPath(); p != "" {
		assert.Contains(t, p, "third_party/onnxruntime")
	}
}

func TestNewInputTensor(t *testing.T) {
	requireRuntime(t)

	src := nchw(8, 5)
	out, err := NewInputTensor(src)
	require.NoError(t, err)
	defer out.Destroy()

	assert.Equal(t, ort.NewShape(1, 3, 8, 5), out.GetShape())
	assert.Equal(t, src.Float32s(), out.GetData())

	// The engine tensor owns its own copy.
	src.Float32s()[0] = 42
	assert.NotEqual(t, float32(42), out.GetData()[0])
}

func TestCopyInto(t *testing.T) {
	requireRuntime(t)

	dst, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, 4, 4))
	require.NoError(t, err)
	defer dst.Destroy()

	src := nchw(4, 4)
	require.NoError(t, CopyInto(dst, src))
	assert.Equal(t, src.Float32s(), dst.GetData())

	assert.ErrorIs(t, CopyInto(dst, nchw(2, 8)), ErrInvalidTensor, "mismatched shape should fail")
}
