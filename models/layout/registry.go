package layout

import (
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-layout/images"
	"github.com/nvr-ai/go-layout/models/layout/preprocess"
)

// Preprocessor converts an image into a model input tensor.
type Preprocessor interface {
	// Process returns a (1, 3, H, W) float32 tensor for img.
	Process(img gocv.Mat) (*tensor.Dense, error)
	// Size returns the tensor's spatial size.
	Size() images.Size
	// SetDebugMode toggles [DEBUG] traces.
	SetDebugMode(enabled bool)
}

// New builds the preprocessor matching cfg.Model.
//
// Arguments:
//   - cfg: The model type and optional overrides.
//
// Returns:
//   - Preprocessor: A Standard, YOLO or Letterbox preprocessor.
//   - error: A validation error, ErrUnknownModel included.
//
// @example
//
//	p, err := layout.New(layout.Config{Model: layout.ModelPPLayoutCDLA})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	input, err := p.Process(page)
func New(cfg Config) (Preprocessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []preprocess.Option{preprocess.WithResizeBackend(cfg.ResizeBackend)}
	size := cfg.Size()

	var p Preprocessor
	switch cfg.Model.Kind() {
	case KindStandard:
		p = preprocess.NewStandard(size, opts...)
	case KindYOLO:
		p = preprocess.NewYOLO(size, opts...)
	case KindLetterbox:
		p = preprocess.NewLetterbox(size, opts...)
	default:
		return nil, ErrUnknownModel
	}
	p.SetDebugMode(cfg.Debug)
	return p, nil
}
