// Package inference - Hand-off of preprocessed tensors to onnxruntime.
package inference

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// ErrRuntimeNotInitialized is returned when tensors are requested before the
// onnxruntime environment exists.
var ErrRuntimeNotInitialized = errors.New("onnxruntime environment is not initialized")

var initMu sync.Mutex

// SharedLibraryPath returns the bundled onnxruntime library for this platform,
// or an empty string when none is shipped for it.
func SharedLibraryPath() string {
	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "third_party/onnxruntime.dll"
		}
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.dylib"
		}
		return "third_party/onnxruntime_amd64.dylib"
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.so"
		}
		return "third_party/onnxruntime.so"
	}
	return ""
}

// InitRuntime loads onnxruntime once per process. Later calls are no-ops.
//
// Arguments:
//   - libPath: The shared library to load; empty selects SharedLibraryPath().
//
// Returns:
//   - error: An error if no library is known or initialization fails.
//
// @example
//
//	if err := inference.InitRuntime(""); err != nil {
//	    log.Fatal(err)
//	}
func InitRuntime(libPath string) error {
	initMu.Lock()
	defer initMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if libPath == "" {
		libPath = SharedLibraryPath()
	}
	if libPath == "" {
		return errors.Errorf("no onnxruntime library for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	ort.SetSharedLibraryPath(libPath)
	if err := ort.InitializeEnvironment(); err != nil {
		return errors.Wrap(err, "failed to initialize onnxruntime environment")
	}
	return nil
}
