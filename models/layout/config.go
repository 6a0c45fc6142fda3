package layout

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-layout/images"
)

// ErrUnknownModel is returned for model types missing from the registry.
var ErrUnknownModel = errors.New("unknown layout model")

// Config selects and sizes a preprocessor.
type Config struct {
	// Model is the layout model the tensor is prepared for.
	Model ModelType `json:"model" yaml:"model"`
	// Height overrides the model's input height when non-zero.
	Height int `json:"height" yaml:"height"`
	// Width overrides the model's input width when non-zero.
	Width int `json:"width" yaml:"width"`
	// ResizeBackend selects the exact-resize implementation (opencv or nfnt).
	ResizeBackend images.ResizeBackend `json:"resize_backend" yaml:"resize_backend"`
	// Debug enables [DEBUG] traces on stderr.
	Debug bool `json:"debug" yaml:"debug"`
}

// ParseConfig decodes a YAML preprocessing config and validates it.
//
// Arguments:
//   - data: The YAML document.
//
// Returns:
//   - Config: The decoded config.
//   - error: A decode or validation error.
//
// @example
//
//	cfg, err := layout.ParseConfig([]byte("model: doclayout_docstructbench\n"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := layout.New(cfg)
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode layout config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the model type, size overrides and resize backend.
func (c Config) Validate() error {
	if !c.Model.Known() {
		return errors.Wrapf(ErrUnknownModel, "%q", c.Model)
	}
	if c.Height < 0 || c.Width < 0 {
		return fmt.Errorf("invalid dimensions: height=%d, width=%d", c.Height, c.Width)
	}
	if !c.ResizeBackend.Valid() {
		return fmt.Errorf("unsupported resize backend: %q", c.ResizeBackend)
	}
	return nil
}

// Size returns the configured input size, falling back to the model default
// for any zero dimension.
func (c Config) Size() images.Size {
	size := c.Model.DefaultSize()
	if c.Height > 0 {
		size.Height = c.Height
	}
	if c.Width > 0 {
		size.Width = c.Width
	}
	return size
}
