// Package layout - Layout-detection model types and their preprocessing conventions.
package layout

import (
	"slices"

	"github.com/nvr-ai/go-layout/images"
)

// ModelType is the unique identifier of a layout-detection model.
type ModelType string

const (
	// ModelPPLayoutCDLA is the PaddlePaddle layout model trained on CDLA.
	ModelPPLayoutCDLA ModelType = "pp_layout_cdla"
	// ModelPPLayoutPubLayNet is the PaddlePaddle layout model trained on PubLayNet.
	ModelPPLayoutPubLayNet ModelType = "pp_layout_publaynet"
	// ModelPPLayoutTable is the PaddlePaddle table layout model.
	ModelPPLayoutTable ModelType = "pp_layout_table"
	// ModelYOLOv8Paper is the YOLOv8n layout model for papers.
	ModelYOLOv8Paper ModelType = "yolov8n_layout_paper"
	// ModelYOLOv8Report is the YOLOv8n layout model for reports.
	ModelYOLOv8Report ModelType = "yolov8n_layout_report"
	// ModelYOLOv8PubLayNet is the YOLOv8n layout model trained on PubLayNet.
	ModelYOLOv8PubLayNet ModelType = "yolov8n_layout_publaynet"
	// ModelYOLOv8General6 is the YOLOv8n six-class general layout model.
	ModelYOLOv8General6 ModelType = "yolov8n_layout_general6"
	// ModelDocLayoutDocStructBench is DocLayout-YOLO trained on DocStructBench.
	ModelDocLayoutDocStructBench ModelType = "doclayout_docstructbench"
	// ModelDocLayoutD4LA is DocLayout-YOLO trained on D4LA.
	ModelDocLayoutD4LA ModelType = "doclayout_d4la"
	// ModelDocLayoutDocSynth is DocLayout-YOLO trained on DocSynth300K.
	ModelDocLayoutDocSynth ModelType = "doclayout_docsynth"
)

// Kind is the preprocessing convention a model family expects.
type Kind string

const (
	// KindStandard resizes exactly and applies ImageNet mean/std.
	KindStandard Kind = "standard"
	// KindYOLO resizes exactly and divides by 255.
	KindYOLO Kind = "yolo"
	// KindLetterbox letterboxes, flips to RGB and divides by 255.
	KindLetterbox Kind = "letterbox"
)

// profile describes how a model type is preprocessed.
type profile struct {
	kind Kind
	size images.Size
}

var (
	ppSize        = images.Size{Width: 608, Height: 800}
	yoloSize      = images.Size{Width: 640, Height: 640}
	docLayoutSize = images.Size{Width: 1024, Height: 1024}
)

var models = map[ModelType]profile{
	ModelPPLayoutCDLA:            {kind: KindStandard, size: ppSize},
	ModelPPLayoutPubLayNet:       {kind: KindStandard, size: ppSize},
	ModelPPLayoutTable:           {kind: KindStandard, size: ppSize},
	ModelYOLOv8Paper:             {kind: KindYOLO, size: yoloSize},
	ModelYOLOv8Report:            {kind: KindYOLO, size: yoloSize},
	ModelYOLOv8PubLayNet:         {kind: KindYOLO, size: yoloSize},
	ModelYOLOv8General6:          {kind: KindYOLO, size: yoloSize},
	ModelDocLayoutDocStructBench: {kind: KindLetterbox, size: docLayoutSize},
	ModelDocLayoutD4LA:           {kind: KindLetterbox, size: docLayoutSize},
	ModelDocLayoutDocSynth:       {kind: KindLetterbox, size: docLayoutSize},
}

// Known reports whether m is a registered model type.
func (m ModelType) Known() bool {
	_, ok := models[m]
	return ok
}

// Kind returns the preprocessing convention of m, empty if m is unknown.
func (m ModelType) Kind() Kind {
	return models[m].kind
}

// DefaultSize returns the input size m was exported with, zero if m is unknown.
func (m ModelType) DefaultSize() images.Size {
	return models[m].size
}

// ModelTypes returns every registered model type in lexical order.
func ModelTypes() []ModelType {
	out := make([]ModelType, 0, len(models))
	for m := range models {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
