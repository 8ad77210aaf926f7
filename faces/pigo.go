package faces

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// PigoOptions tune the cascade scan
type PigoOptions struct {
	MinSize     int
	MaxSize     int
	ShiftFactor float64
	ScaleFactor float64
	// IoUThreshold merges overlapping detections of the same face
	IoUThreshold float64
	// MinQuality is the cascade's own detection score cut-off, the counterpart of the
	// confidence floor a neural detector applies internally
	MinQuality float32
}

var DefaultPigoOptions = PigoOptions{
	MinSize:      20,
	MaxSize:      1000,
	ShiftFactor:  0.1,
	ScaleFactor:  1.1,
	IoUThreshold: 0.2,
	MinQuality:   5,
}

// PigoDetector detects faces with a pigo pixel-intensity-comparison cascade
type PigoDetector struct {
	classifier *pigo.Pigo
	opts       PigoOptions
}

func LoadPigoDetector(path string, opts PigoOptions) (*PigoDetector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", path, err)
	}
	return NewPigoDetector(cascade, opts)
}

func NewPigoDetector(cascade []byte, opts PigoOptions) (*PigoDetector, error) {
	if err := checkCascade(cascade); err != nil {
		return nil, err
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade: %w", err)
	}
	return &PigoDetector{classifier: classifier, opts: opts}, nil
}

// checkCascade validates the packet header and length before Unpack, which indexes
// into the raw bytes without bounds checks.
// Layout: 8 reserved bytes, tree depth, tree count, then per tree
// 4*2^depth-4 code bytes, 2^depth float32 leaves and a float32 threshold.
func checkCascade(cascade []byte) error {
	if len(cascade) < 16 {
		return errors.New("pigo cascade is too short")
	}
	depth := binary.LittleEndian.Uint32(cascade[8:])
	trees := binary.LittleEndian.Uint32(cascade[12:])
	if depth == 0 || trees == 0 {
		return fmt.Errorf("corrupt pigo cascade: depth %d, %d trees", depth, trees)
	}
	if depth > 16 {
		return fmt.Errorf("corrupt pigo cascade: tree depth %d", depth)
	}
	need := 16 + uint64(trees)*8*(uint64(1)<<depth)
	if uint64(len(cascade)) < need {
		return fmt.Errorf("corrupt pigo cascade: %d bytes, expected %d", len(cascade), need)
	}
	return nil
}

func (d *PigoDetector) Detect(img image.Image) ([]Box, error) {
	src := pigo.ImgToNRGBA(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	params := pigo.CascadeParams{
		MinSize:     d.opts.MinSize,
		MaxSize:     d.opts.MaxSize,
		ShiftFactor: d.opts.ShiftFactor,
		ScaleFactor: d.opts.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	dets := d.classifier.RunCascade(params, 0)
	dets = d.classifier.ClusterDetections(dets, d.opts.IoUThreshold)

	return detectionBoxes(dets, d.opts.MinQuality), nil
}

// detectionBoxes turns pigo's centre and scale into corner boxes
func detectionBoxes(dets []pigo.Detection, minQuality float32) []Box {
	boxes := make([]Box, 0, len(dets))
	for _, det := range dets {
		if det.Q < minQuality {
			continue
		}
		half := det.Scale / 2
		boxes = append(boxes, Box{
			X1: det.Col - half,
			Y1: det.Row - half,
			X2: det.Col + half,
			Y2: det.Row + half,
		})
	}
	return boxes
}
