//go:build dlib

package faces

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"github.com/Kagami/go-face"
)

// DlibDetector uses the dlib HOG (or CNN) face detector through go-face.
// Only the face rectangles are used, descriptors are computed by this package.
type DlibDetector struct {
	recognizer *face.Recognizer
	cnn        bool
	mutex      sync.Mutex
}

func NewDlibDetector(modelsDir string, cnn bool) (Detector, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("dlib models in %s: %w", modelsDir, err)
	}
	return &DlibDetector{recognizer: rec, cnn: cnn}, nil
}

func (d *DlibDetector) Detect(img image.Image) ([]Box, error) {
	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	var found []face.Face
	var err error
	if d.cnn {
		found, err = d.recognizer.RecognizeCNN(buf.Bytes())
	} else {
		found, err = d.recognizer.Recognize(buf.Bytes())
	}
	if err != nil {
		return nil, err
	}
	boxes := make([]Box, 0, len(found))
	for _, f := range found {
		boxes = append(boxes, Box{
			X1: f.Rectangle.Min.X,
			Y1: f.Rectangle.Min.Y,
			X2: f.Rectangle.Max.X,
			Y2: f.Rectangle.Max.Y,
		})
	}
	return boxes, nil
}
