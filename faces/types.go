package faces

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

const (
	// MinCropSize is the smallest width/height a face crop may have to be classified
	MinCropSize = 10
	// FaceCanvasSize is the square size every face crop is normalized to
	FaceCanvasSize = 128
	// AnalysisSize is the square size the descriptor is computed on
	AnalysisSize = 64
)

var (
	ErrEmptyImage      = errors.New("faces: empty image")
	ErrDescriptorShape = errors.New("faces: descriptor length does not match the classifier")
)

// Box is a face region in pixel coordinates relative to the image bounds origin.
// X2 and Y2 are exclusive.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (b Box) Width() int {
	return b.X2 - b.X1
}

func (b Box) Height() int {
	return b.Y2 - b.Y1
}

func (b Box) Area() int {
	return b.Width() * b.Height()
}

func (b Box) Valid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

// Clamp limits the box to a w x h raster
func (b Box) Clamp(w, h int) Box {
	return Box{
		X1: max(0, b.X1),
		Y1: max(0, b.Y1),
		X2: min(w, b.X2),
		Y2: min(h, b.Y2),
	}
}

// Rect translates the box into absolute image coordinates
func (b Box) Rect(origin image.Point) image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2).Add(origin)
}

// Match is a positive identification. Identity and Confidence always travel together,
// the absence of a match is signalled by the accompanying ok flag.
type Match struct {
	Identity   string  `json:"identity"`
	Confidence float64 `json:"confidence"`
}

// CropMode selects which part of the detected face box is handed to the classifier.
// The classifier artifact is trained against exactly one of them.
type CropMode int

const (
	CropFull  CropMode = iota // whole detected box
	CropUpper                 // top 60% of the box (forehead to nose)
)

const upperCropRatio = 0.6

func ParseCropMode(s string) (CropMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return CropFull, nil
	case "upper", "top60":
		return CropUpper, nil
	}
	return CropFull, fmt.Errorf("faces: unknown crop mode %q", s)
}

func (m CropMode) String() string {
	if m == CropUpper {
		return "upper"
	}
	return "full"
}
