package faces

import (
	"image"
	"math"
)

// Detector is a pretrained face/object detector. It returns raw candidate boxes
// relative to img.Bounds().Min, possibly extending outside the raster.
type Detector interface {
	Detect(img image.Image) ([]Box, error)
}

// Locator reduces the detector output to at most one face region
type Locator struct {
	detector Detector
	mode     CropMode
}

func NewLocator(detector Detector, mode CropMode) *Locator {
	return &Locator{detector: detector, mode: mode}
}

// Locate returns the largest detected face box, clamped to the image.
// ok is false when nothing usable was detected.
func (l *Locator) Locate(img image.Image) (box Box, ok bool, err error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Box{}, false, ErrEmptyImage
	}
	candidates, err := l.detector.Detect(img)
	if err != nil {
		return Box{}, false, err
	}
	box, ok = SelectLargest(candidates, bounds.Dx(), bounds.Dy())
	if ok && l.mode == CropUpper {
		box = upperPart(box)
	}
	return
}

// SelectLargest clamps every candidate to w x h, drops the degenerate ones and returns
// the one with the biggest area. Ties go to the first candidate.
func SelectLargest(candidates []Box, w, h int) (best Box, ok bool) {
	bestArea := -1
	for _, c := range candidates {
		c = c.Clamp(w, h)
		if !c.Valid() {
			continue
		}
		if area := c.Area(); area > bestArea {
			best, bestArea, ok = c, area, true
		}
	}
	return
}

func upperPart(b Box) Box {
	b.Y2 = b.Y1 + int(math.Floor(upperCropRatio*float64(b.Height())))
	return b
}
